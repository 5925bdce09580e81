// Package typename models fully-qualified names of generated types.
//
// A TypeName is a path of components. Each component carries an optional
// identifier segment (the Go-facing name) and an optional JSON segment (the
// location in the OpenAPI document), so that a name like
// Components.Schemas.Pet also knows it came from #/components/schemas/Pet.
package typename

import (
	"slices"
	"strconv"
	"strings"
)

// Component is one segment of a TypeName. At least one of the identifier
// and JSON segments is present.
type Component struct {
	Identifier    string
	HasIdentifier bool
	JSON          string
	HasJSON       bool
}

// IdentifierComponent returns a component with only an identifier segment.
func IdentifierComponent(identifier string) Component {
	return Component{Identifier: identifier, HasIdentifier: true}
}

// JSONComponent returns a component with only a JSON segment.
func JSONComponent(json string) Component {
	return Component{JSON: json, HasJSON: true}
}

// BothComponent returns a component with both segments.
func BothComponent(identifier, json string) Component {
	return Component{Identifier: identifier, HasIdentifier: true, JSON: json, HasJSON: true}
}

func (c Component) valid() bool {
	return c.HasIdentifier || c.HasJSON
}

// TypeName is an immutable, fully-qualified type name. The zero value is
// not a valid name; use New or FromComponents.
type TypeName struct {
	components []Component
}

// New returns a TypeName made of identifier-only components.
// It panics if no identifiers are given.
func New(identifiers ...string) TypeName {
	cs := make([]Component, len(identifiers))
	for i, id := range identifiers {
		cs[i] = IdentifierComponent(id)
	}
	return FromComponents(cs...)
}

// FromComponents returns a TypeName with the given components.
// It panics if a component is empty or if no component has an identifier.
func FromComponents(components ...Component) TypeName {
	hasIdentifier := false
	for _, c := range components {
		if !c.valid() {
			panic("typename: component must have an identifier or a JSON segment")
		}
		if c.HasIdentifier {
			hasIdentifier = true
		}
	}
	if !hasIdentifier {
		panic("typename: a type name needs at least one identifier component")
	}
	return TypeName{components: slices.Clone(components)}
}

// IsZero reports whether n is the zero value.
func (n TypeName) IsZero() bool {
	return len(n.components) == 0
}

// Components returns a copy of the components.
func (n TypeName) Components() []Component {
	return slices.Clone(n.components)
}

// Appending returns a new name with a component holding both segments.
func (n TypeName) Appending(identifier, json string) TypeName {
	return n.AppendingComponent(BothComponent(identifier, json))
}

// AppendingIdentifier returns a new name with an identifier-only component.
func (n TypeName) AppendingIdentifier(identifier string) TypeName {
	return n.AppendingComponent(IdentifierComponent(identifier))
}

// AppendingJSON returns a new name with a JSON-only component.
func (n TypeName) AppendingJSON(json string) TypeName {
	return n.AppendingComponent(JSONComponent(json))
}

// AppendingComponent returns a new name with c appended. It panics if c has
// neither segment.
func (n TypeName) AppendingComponent(c Component) TypeName {
	if !c.valid() {
		panic("typename: appended component must have an identifier or a JSON segment")
	}
	cs := make([]Component, len(n.components), len(n.components)+1)
	copy(cs, n.components)
	return TypeName{components: append(cs, c)}
}

// AppendingToLastComponent returns a sibling name: the last identifier is
// replaced by identifier, and json is recorded as a JSON-only component so
// the document path still points below the original name.
//
//	Components.Schemas.Tags (#/components/schemas/Tags)
//	  -> Components.Schemas.TagsElement (#/components/schemas/Tags/items)
func (n TypeName) AppendingToLastComponent(identifier, json string) TypeName {
	last := n.lastIdentifierIndex()
	if last < 0 {
		panic("typename: cannot append to the last component of an empty name")
	}
	cs := make([]Component, 0, len(n.components)+1)
	cs = append(cs, n.components...)
	cs[last].Identifier = identifier
	return TypeName{components: append(cs, JSONComponent(json))}
}

// Parent returns the name without its last component. It panics if the
// result would have no identifier.
func (n TypeName) Parent() TypeName {
	if len(n.components) == 0 {
		panic("typename: parent of an empty name")
	}
	return FromComponents(n.components[:len(n.components)-1]...)
}

func (n TypeName) lastIdentifierIndex() int {
	for i := len(n.components) - 1; i >= 0; i-- {
		if n.components[i].HasIdentifier {
			return i
		}
	}
	return -1
}

// IdentifierPath returns the identifier segments in order.
func (n TypeName) IdentifierPath() []string {
	out := make([]string, 0, len(n.components))
	for _, c := range n.components {
		if c.HasIdentifier {
			out = append(out, c.Identifier)
		}
	}
	return out
}

// JSONPath returns the JSON segments in order, or nil if there are none.
func (n TypeName) JSONPath() []string {
	var out []string
	for _, c := range n.components {
		if c.HasJSON {
			out = append(out, c.JSON)
		}
	}
	return out
}

// FullyQualifiedName returns the dot-joined identifier path.
func (n TypeName) FullyQualifiedName() string {
	return strings.Join(n.IdentifierPath(), ".")
}

// ShortName returns the last identifier.
func (n TypeName) ShortName() string {
	i := n.lastIdentifierIndex()
	if i < 0 {
		panic("typename: short name of an empty name")
	}
	return n.components[i].Identifier
}

// FullyQualifiedJSONPath returns the slash-joined JSON path and whether the
// name has any JSON segments.
func (n TypeName) FullyQualifiedJSONPath() (string, bool) {
	p := n.JSONPath()
	if len(p) == 0 {
		return "", false
	}
	return strings.Join(p, "/"), true
}

// ShortJSONName returns the last JSON segment and whether one exists.
func (n TypeName) ShortJSONName() (string, bool) {
	p := n.JSONPath()
	if len(p) == 0 {
		return "", false
	}
	return p[len(p)-1], true
}

// String combines both paths: "Components.Schemas.Pet (#/components/schemas/Pet)".
func (n TypeName) String() string {
	if n.IsZero() {
		return "<invalid type name>"
	}
	name := n.FullyQualifiedName()
	if path, ok := n.FullyQualifiedJSONPath(); ok {
		return name + " (" + path + ")"
	}
	return name
}

// Equal reports whether both names have identical component sequences.
func (n TypeName) Equal(other TypeName) bool {
	return slices.Equal(n.components, other.components)
}

// Key returns a string that is equal for two names exactly when Equal
// reports true, for use as a map key.
func (n TypeName) Key() string {
	var b strings.Builder
	for i, c := range n.components {
		if i > 0 {
			b.WriteByte(',')
		}
		if c.HasIdentifier {
			b.WriteString(strconv.Quote(c.Identifier))
		} else {
			b.WriteByte('-')
		}
		b.WriteByte(':')
		if c.HasJSON {
			b.WriteString(strconv.Quote(c.JSON))
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// HasPrefix reports whether the leading components of n equal prefix.
func (n TypeName) HasPrefix(prefix TypeName) bool {
	if len(prefix.components) > len(n.components) {
		return false
	}
	return slices.Equal(n.components[:len(prefix.components)], prefix.components)
}
