package generator

import (
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/recursion"
	"github.com/blimu-dev/typegen/pkg/typeassign"
	"github.com/blimu-dev/typegen/pkg/typename"
)

// declNode adapts a top-level schema declaration to recursion.Node.
type declNode struct {
	name    string
	boxable bool
	edges   []string
}

func (n declNode) Name() string    { return n.name }
func (n declNode) IsBoxable() bool { return n.boxable }
func (n declNode) Edges() []string { return n.edges }

var _ recursion.Node[string] = declNode{}

// boxRecursiveSchemas marks the schema declarations that must hold their
// recursive references indirectly and returns their names in document
// order.
func boxRecursiveSchemas(decls []ir.IRDecl, logger diag.Logger) ([]string, error) {
	nodes := make([]declNode, 0, len(decls))
	known := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		known[d.Name.FullyQualifiedName()] = struct{}{}
	}
	for _, d := range decls {
		nodes = append(nodes, declNode{
			name:    d.Name.FullyQualifiedName(),
			boxable: d.Kind.IsBoxable(),
			edges:   declEdges(d, known),
		})
	}

	boxed, err := recursion.ComputeBoxedTypes[string, declNode](nodes, recursion.NewMapContainer[string, declNode](nodes))
	if err != nil {
		return nil, err
	}

	var out []string
	for i := range decls {
		name := decls[i].Name.FullyQualifiedName()
		if _, ok := boxed[name]; ok {
			decls[i].Boxed = true
			out = append(out, name)
			logger.Debug("boxing recursive type", "name", name)
		}
	}
	return out, nil
}

// declEdges lists the component schemas d stores by value: usages that
// are not wrapped in an array or a map, followed through the inline
// declarations d stores the same way. Edges to schemas that were not
// declared are dropped.
func declEdges(d ir.IRDecl, known map[string]struct{}) []string {
	nested := map[string]ir.IRDecl{}
	d.Walk(func(n ir.IRDecl) { nested[n.Name.Key()] = n })

	var edges []string
	seenEdge := map[string]struct{}{}
	visited := map[string]struct{}{}
	var visit func(ir.IRDecl)
	visit = func(cur ir.IRDecl) {
		if _, ok := visited[cur.Name.Key()]; ok {
			return
		}
		visited[cur.Name.Key()] = struct{}{}
		for _, u := range cur.Usages() {
			name, ok := directName(u)
			if !ok {
				continue
			}
			if isComponentSchema(name) {
				fq := name.FullyQualifiedName()
				if _, ok := known[fq]; !ok {
					continue
				}
				if _, dup := seenEdge[fq]; !dup {
					seenEdge[fq] = struct{}{}
					edges = append(edges, fq)
				}
				continue
			}
			if inner, ok := nested[name.Key()]; ok {
				visit(inner)
			}
		}
	}
	visit(d)
	return edges
}

// directName returns the named type u stores by value, looking through
// optional wrappers only.
func directName(u typename.Usage) (typename.TypeName, bool) {
	for u.IsOptional() {
		u, _ = u.Wrapped()
	}
	if !u.IsBase() {
		return typename.TypeName{}, false
	}
	return u.BaseName(), true
}

var schemasRoot = typeassign.LocationSchemas.Root()

// isComponentSchema reports whether name is a top-level component schema
// such as Components.Schemas.Pet.
func isComponentSchema(name typename.TypeName) bool {
	return name.HasPrefix(schemasRoot) && len(name.Components()) == len(schemasRoot.Components())+1
}
