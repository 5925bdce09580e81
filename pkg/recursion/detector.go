// Package recursion finds the declarations that must store recursive
// references indirectly so that a cyclic type graph can be constructed.
package recursion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRecursion indicates a cycle with no boxable node.
	ErrInvalidRecursion = errors.New("invalid recursion")
	// ErrNodeNotFound indicates an edge to a name the container does not know.
	ErrNodeNotFound = errors.New("node not found")
)

// InvalidRecursionError reports a cycle that no node can break.
type InvalidRecursionError struct {
	// Name is the node where the cycle starts.
	Name  string
	Cycle []string
}

func (e *InvalidRecursionError) Error() string {
	return fmt.Sprintf("invalid recursion: %s is part of a cycle without a boxable type: %s",
		e.Name, strings.Join(e.Cycle, " -> "))
}

// Is reports whether target is ErrInvalidRecursion.
func (e *InvalidRecursionError) Is(target error) bool {
	return target == ErrInvalidRecursion
}

// Node is a named vertex of the type graph.
type Node[K comparable] interface {
	Name() K
	// IsBoxable reports whether the node can hold its references indirectly.
	IsBoxable() bool
	// Edges returns the names of the nodes this one embeds, in order.
	Edges() []K
}

// Container resolves edge names to nodes.
type Container[K comparable, N Node[K]] interface {
	Lookup(name K) (N, error)
}

// ComputeBoxedTypes returns the names of the nodes that must be boxed so
// that every cycle reachable from roots contains a boxed node. Roots are
// visited in order; within a cycle the first boxable node from where the
// cycle was entered is chosen, and a cycle that already contains a boxed
// node is left alone.
func ComputeBoxedTypes[K comparable, N Node[K]](roots []N, container Container[K, N]) (map[K]struct{}, error) {
	d := &detector[K, N]{
		container: container,
		seen:      map[K]struct{}{},
		boxed:     map[K]struct{}{},
		stackSet:  map[K]struct{}{},
	}
	for _, root := range roots {
		if _, ok := d.seen[root.Name()]; ok {
			continue
		}
		if err := d.visit(root); err != nil {
			return nil, err
		}
	}
	return d.boxed, nil
}

type detector[K comparable, N Node[K]] struct {
	container Container[K, N]
	seen      map[K]struct{}
	boxed     map[K]struct{}
	stack     []N
	stackSet  map[K]struct{}
}

func (d *detector[K, N]) visit(node N) error {
	name := node.Name()
	if _, ok := d.seen[name]; ok {
		if _, onStack := d.stackSet[name]; !onStack {
			return nil
		}
		return d.breakCycle(name)
	}

	d.seen[name] = struct{}{}
	d.stack = append(d.stack, node)
	d.stackSet[name] = struct{}{}
	defer func() {
		d.stack = d.stack[:len(d.stack)-1]
		delete(d.stackSet, name)
	}()

	for _, edge := range node.Edges() {
		target, err := d.container.Lookup(edge)
		if err != nil {
			return fmt.Errorf("resolving edge %v of %v: %w", edge, name, err)
		}
		if err := d.visit(target); err != nil {
			return err
		}
	}
	return nil
}

// breakCycle handles the back edge to name, which is on the stack.
func (d *detector[K, N]) breakCycle(name K) error {
	start := 0
	for i, n := range d.stack {
		if n.Name() == name {
			start = i
			break
		}
	}
	cycle := d.stack[start:]
	for _, n := range cycle {
		if _, ok := d.boxed[n.Name()]; ok {
			return nil
		}
	}
	for _, n := range cycle {
		if n.IsBoxable() {
			d.boxed[n.Name()] = struct{}{}
			return nil
		}
	}
	names := make([]string, 0, len(cycle)+1)
	for _, n := range cycle {
		names = append(names, fmt.Sprint(n.Name()))
	}
	names = append(names, fmt.Sprint(name))
	return &InvalidRecursionError{Name: fmt.Sprint(name), Cycle: names}
}
