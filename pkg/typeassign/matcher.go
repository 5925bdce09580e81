package typeassign

import (
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/typename"
)

// SchemaResolver resolves a schema reference one level deep.
type SchemaResolver interface {
	LookupSchema(ref string) (*ir.IRSchema, error)
}

// TypeMatcher decides whether a schema can be used through an existing
// name (a builtin or a component) or needs a declaration of its own.
type TypeMatcher struct {
	names    naming.SafeNameGenerator
	resolver SchemaResolver
}

// NewTypeMatcher returns a matcher that names references with names.
// resolver is consulted only for optionality of referenced schemas and may
// be nil.
func NewTypeMatcher(names naming.SafeNameGenerator, resolver SchemaResolver) *TypeMatcher {
	return &TypeMatcher{names: names, resolver: resolver}
}

// TryMatchBuiltin returns the builtin usage for s, looking through arrays.
// Schemas with allowed-value lists never match.
func (m *TypeMatcher) TryMatchBuiltin(s *ir.IRSchema) (typename.Usage, bool) {
	u, ok, _ := tryMatchRecursive(s, func(leaf *ir.IRSchema) (typename.Usage, bool, error) {
		u, ok := matchBuiltinLeaf(leaf)
		return u, ok, nil
	})
	return u, ok
}

// TryMatchReferenceable is TryMatchBuiltin extended with component
// references. The result carries the optionality of s.
func (m *TypeMatcher) TryMatchReferenceable(s *ir.IRSchema) (typename.Usage, bool, error) {
	u, ok, err := tryMatchRecursive(s, func(leaf *ir.IRSchema) (typename.Usage, bool, error) {
		if u, ok := matchBuiltinLeaf(leaf); ok {
			return u, true, nil
		}
		if leaf.Kind != ir.IRKindRef {
			return typename.Usage{}, false, nil
		}
		name, err := typeNameForReference(m.names, leaf.Ref, LocationSchemas)
		if err != nil {
			return typename.Usage{}, false, err
		}
		return name.AsUsage(), true, nil
	})
	if err != nil || !ok {
		return typename.Usage{}, false, err
	}
	return u.WithOptional(m.IsOptional(s)), true, nil
}

// IsReferenceable reports whether TryMatchReferenceable would match s,
// without computing the name.
func (m *TypeMatcher) IsReferenceable(s *ir.IRSchema) bool {
	_, ok, _ := tryMatchRecursive(s, func(leaf *ir.IRSchema) (typename.Usage, bool, error) {
		if leaf.Kind == ir.IRKindRef {
			return typename.Any.AsUsage(), true, nil
		}
		u, ok := matchBuiltinLeaf(leaf)
		return u, ok, nil
	})
	return ok
}

// IsInlinable reports whether s needs a synthesized declaration.
func (m *TypeMatcher) IsInlinable(s *ir.IRSchema) bool {
	return !m.IsReferenceable(s)
}

// IsOptional reports whether a value of s may be absent. References are
// followed so that a nullable component makes its uses optional.
func (m *TypeMatcher) IsOptional(s *ir.IRSchema) bool {
	if s.IsOptional() {
		return true
	}
	if m.resolver == nil {
		return false
	}
	visited := map[string]struct{}{}
	for cur := s; cur.Kind == ir.IRKindRef; {
		if _, ok := visited[cur.Ref]; ok {
			return false
		}
		visited[cur.Ref] = struct{}{}
		target, err := m.resolver.LookupSchema(cur.Ref)
		if err != nil {
			return false
		}
		if target.Nullable {
			return true
		}
		cur = target
	}
	return false
}

type leafMatcher func(*ir.IRSchema) (typename.Usage, bool, error)

// tryMatchRecursive unwraps arrays and applies match to the innermost
// element schema. An array without items is []any.
func tryMatchRecursive(s *ir.IRSchema, match leafMatcher) (typename.Usage, bool, error) {
	if s.Kind != ir.IRKindArray {
		return match(s)
	}
	if s.Items == nil {
		return typename.Any.AsUsage().AsArray(), true, nil
	}
	elem, ok, err := tryMatchRecursive(s.Items, match)
	if err != nil || !ok {
		return typename.Usage{}, false, err
	}
	return elem.WithOptional(s.Items.Nullable).AsArray(), true, nil
}

func matchBuiltinLeaf(s *ir.IRSchema) (typename.Usage, bool) {
	if s.IsEnum() {
		return typename.Usage{}, false
	}
	switch s.Kind {
	case ir.IRKindString:
		switch s.Format {
		case "date-time":
			return typename.Time.AsUsage(), true
		case "byte", "binary":
			return typename.Byte.AsUsage().AsArray(), true
		}
		return typename.String.AsUsage(), true
	case ir.IRKindInteger:
		switch s.Format {
		case "int32":
			return typename.Int32.AsUsage(), true
		case "int64":
			return typename.Int64.AsUsage(), true
		}
		return typename.Int.AsUsage(), true
	case ir.IRKindNumber:
		if s.Format == "float" {
			return typename.Float32.AsUsage(), true
		}
		return typename.Float64.AsUsage(), true
	case ir.IRKindBoolean:
		return typename.Bool.AsUsage(), true
	case ir.IRKindFragment:
		return typename.Any.AsUsage(), true
	case ir.IRKindObject:
		if len(s.Properties) == 0 && s.AdditionalPolicy() == ir.AdditionalPropertiesUnspecified {
			return typename.Any.AsUsage().AsDictionaryValue(), true
		}
	}
	return typename.Usage{}, false
}
