package recursion

import "fmt"

// SimpleNode is a Node backed by plain values.
type SimpleNode[K comparable] struct {
	Key     K
	Boxable bool
	Targets []K
}

// Name implements Node.
func (n SimpleNode[K]) Name() K { return n.Key }

// IsBoxable implements Node.
func (n SimpleNode[K]) IsBoxable() bool { return n.Boxable }

// Edges implements Node.
func (n SimpleNode[K]) Edges() []K { return n.Targets }

// MapContainer is a Container over a map of nodes.
type MapContainer[K comparable, N Node[K]] map[K]N

// Lookup implements Container.
func (m MapContainer[K, N]) Lookup(name K) (N, error) {
	n, ok := m[name]
	if !ok {
		var zero N
		return zero, fmt.Errorf("%w: %v", ErrNodeNotFound, name)
	}
	return n, nil
}

// NewMapContainer indexes nodes by name.
func NewMapContainer[K comparable, N Node[K]](nodes []N) MapContainer[K, N] {
	m := make(MapContainer[K, N], len(nodes))
	for _, n := range nodes {
		m[n.Name()] = n
	}
	return m
}
