// Package typeassign assigns a TypeName to every component, property,
// parameter and body in an OpenAPI document, and decides which schemas the
// generator supports.
package typeassign

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/typename"
)

const (
	// InlineTypeSuffix is appended to names of types synthesized in a new scope.
	InlineTypeSuffix = "Payload"
	// ElementSuffix is appended to the parent's name for inline array elements.
	ElementSuffix = "Element"
)

// SubtypeNaming selects how a synthesized name relates to its parent.
type SubtypeNaming int

const (
	// AppendScope nests the new name under the parent: Parent.FooPayload.
	AppendScope SubtypeNaming = iota
	// AppendToLastPathComponent makes a sibling of the parent by suffixing
	// its last identifier: ParentElement.
	AppendToLastPathComponent
)

// TypeAssigner is the naming authority for a single generation run.
type TypeAssigner struct {
	names   naming.SafeNameGenerator
	matcher *TypeMatcher
}

// NewTypeAssigner returns an assigner that escapes document strings with
// names and resolves references through resolver.
func NewTypeAssigner(names naming.SafeNameGenerator, resolver SchemaResolver) *TypeAssigner {
	return &TypeAssigner{names: names, matcher: NewTypeMatcher(names, resolver)}
}

// Names returns the safe name generator.
func (a *TypeAssigner) Names() naming.SafeNameGenerator { return a.names }

// Matcher returns the TypeMatcher backing a.
func (a *TypeAssigner) Matcher() *TypeMatcher { return a.matcher }

// TypeName returns the name of the component key at loc, e.g.
// Components.Schemas.Pet (#/components/schemas/Pet).
func (a *TypeAssigner) TypeName(key string, loc Location) typename.TypeName {
	return typeNameForKey(a.names, key, loc)
}

// TypeNameForReference returns the name of the component ref points to.
func (a *TypeAssigner) TypeNameForReference(ref string, loc Location) (typename.TypeName, error) {
	return typeNameForReference(a.names, ref, loc)
}

// TypeUsageForObjectProperty returns the usage of a property named name
// declared on the struct parent.
func (a *TypeAssigner) TypeUsageForObjectProperty(name string, s *ir.IRSchema, parent typename.TypeName) (typename.Usage, error) {
	return a.typeUsage(name, name, s, parent, AppendScope)
}

// TypeUsageForArrayElement returns the usage of the items of an array
// declared as parent. Inline elements are named <Parent>Element.
func (a *TypeAssigner) TypeUsageForArrayElement(s *ir.IRSchema, parent typename.TypeName) (typename.Usage, error) {
	return a.typeUsage(parent.ShortName(), "items", s, parent, AppendToLastPathComponent)
}

// TypeUsageForCompositeChild returns the usage of the child at index of an
// allOf, anyOf or oneOf declared as parent.
func (a *TypeAssigner) TypeUsageForCompositeChild(index int, s *ir.IRSchema, parent typename.TypeName) (typename.Usage, error) {
	return a.typeUsage(CompositeChildHint(index), CompositeChildJSON(index), s, parent, AppendScope)
}

// TypeUsageForParameter returns the usage of a parameter or header named
// name inside parent.
func (a *TypeAssigner) TypeUsageForParameter(name string, s *ir.IRSchema, parent typename.TypeName) (typename.Usage, error) {
	return a.typeUsage(name, name, s, parent, AppendScope)
}

// TypeUsageForContent returns the usage of a body with content type ct
// inside parent.
func (a *TypeAssigner) TypeUsageForContent(ct naming.ContentType, s *ir.IRSchema, parent typename.TypeName) (typename.Usage, error) {
	return a.typeUsage(a.names.ContentTypeName(ct), ct.Raw, s, parent, AppendScope)
}

// CompositeChildHint is the naming hint for the child at index (zero based).
func CompositeChildHint(index int) string {
	return fmt.Sprintf("Value%d", index+1)
}

// CompositeChildJSON is the JSON path segment for the child at index.
func CompositeChildJSON(index int) string {
	return fmt.Sprintf("value%d", index+1)
}

func (a *TypeAssigner) typeUsage(hint, json string, s *ir.IRSchema, parent typename.TypeName, method SubtypeNaming) (typename.Usage, error) {
	if u, ok, err := a.matcher.TryMatchReferenceable(s); err != nil {
		return typename.Usage{}, err
	} else if ok {
		return u, nil
	}
	optional := a.matcher.IsOptional(s)

	// An inline array keeps the hint; its element gets the synthesized name.
	if s.Kind == ir.IRKindArray && s.Items != nil {
		elem, err := a.typeUsage(hint, json, s.Items, parent, method)
		if err != nil {
			return typename.Usage{}, err
		}
		return elem.AsArray().WithOptional(optional), nil
	}

	var name typename.TypeName
	switch method {
	case AppendToLastPathComponent:
		// The hint is already an identifier: the parent's short name.
		name = parent.AppendingToLastComponent(hint+ElementSuffix, json)
	default:
		name = parent.Appending(upperFirst(a.names.TypeName(hint))+InlineTypeSuffix, json)
	}
	return name.AsUsage().WithOptional(optional), nil
}

func typeNameForKey(names naming.SafeNameGenerator, key string, loc Location) typename.TypeName {
	return loc.Root().Appending(names.TypeName(key), key)
}

func typeNameForReference(names naming.SafeNameGenerator, ref string, loc Location) (typename.TypeName, error) {
	key, err := ParseReference(ref, loc)
	if err != nil {
		return typename.TypeName{}, err
	}
	return typeNameForKey(names, key, loc), nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
