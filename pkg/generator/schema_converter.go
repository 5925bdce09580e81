package generator

import (
	"fmt"
	"slices"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/typegen/pkg/ir"
)

// schemaRefToIR converts an OpenAPI schema reference to IR schema.
// References are kept as references and never followed. required records
// whether the parent requires a value at this position.
func schemaRefToIR(sr *openapi3.SchemaRef, required bool) *ir.IRSchema {
	if sr == nil {
		return &ir.IRSchema{Kind: ir.IRKindFragment, Required: required}
	}
	if sr.Ref != "" {
		return &ir.IRSchema{Kind: ir.IRKindRef, Ref: sr.Ref, Required: required}
	}
	if sr.Value == nil {
		return &ir.IRSchema{Kind: ir.IRKindFragment, Required: required}
	}
	s := sr.Value

	out := &ir.IRSchema{
		Required:    required,
		Nullable:    s.Nullable || (s.Type != nil && s.Type.Includes(openapi3.TypeNull)),
		Format:      s.Format,
		Annotations: extractAnnotations(sr),
	}

	// Polymorphism discriminator
	if s.Discriminator != nil {
		out.Discriminator = &ir.IRDiscriminator{PropertyName: s.Discriminator.PropertyName, Mapping: s.Discriminator.Mapping}
	}

	// Compositions
	switch {
	case len(s.OneOf) > 0:
		out.Kind = ir.IRKindOneOf
		out.OneOf = convertChildren(s.OneOf)
		return out
	case len(s.AnyOf) > 0:
		out.Kind = ir.IRKindAnyOf
		out.AnyOf = convertChildren(s.AnyOf)
		return out
	case len(s.AllOf) > 0:
		out.Kind = ir.IRKindAllOf
		out.AllOf = convertChildren(s.AllOf)
		return out
	case s.Not != nil:
		out.Kind = ir.IRKindNot
		out.Not = schemaRefToIR(s.Not, true)
		return out
	}

	out.Kind = inferKind(s)
	if len(s.Enum) > 0 {
		vals := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			if v == nil {
				// null among allowed values only makes the schema nullable
				out.Nullable = true
				continue
			}
			vals = append(vals, fmt.Sprint(v))
		}
		out.EnumValues = vals
		out.EnumRaw = slices.DeleteFunc(slices.Clone(s.Enum), func(v any) bool { return v == nil })
	}

	switch out.Kind {
	case ir.IRKindArray:
		if s.Items != nil {
			out.Items = schemaRefToIR(s.Items, true)
		}
	case ir.IRKindObject:
		// deterministic order
		names := make([]string, 0, len(s.Properties))
		for n := range s.Properties {
			names = append(names, n)
		}
		sort.Strings(names)
		out.Properties = make([]ir.IRField, 0, len(names))
		for _, n := range names {
			pr := s.Properties[n]
			req := slices.Contains(s.Required, n)
			out.Properties = append(out.Properties, ir.IRField{
				Name:        n,
				Type:        schemaRefToIR(pr, req),
				Required:    req,
				Annotations: extractAnnotations(pr),
			})
		}
		switch ap := s.AdditionalProperties; {
		case ap.Schema != nil:
			out.AdditionalPropertiesPolicy = ir.AdditionalPropertiesTyped
			out.AdditionalProperties = schemaRefToIR(ap.Schema, true)
		case ap.Has != nil && *ap.Has:
			out.AdditionalPropertiesPolicy = ir.AdditionalPropertiesAllowAny
		case ap.Has != nil:
			out.AdditionalPropertiesPolicy = ir.AdditionalPropertiesDisallowed
		default:
			out.AdditionalPropertiesPolicy = ir.AdditionalPropertiesUnspecified
		}
	}
	return out
}

func convertChildren(refs openapi3.SchemaRefs) []*ir.IRSchema {
	out := make([]*ir.IRSchema, 0, len(refs))
	for _, sub := range refs {
		out = append(out, schemaRefToIR(sub, true))
	}
	return out
}

// inferKind picks the schema kind from its declared type, ignoring "null",
// and falls back to the keywords present. Several non-null types make a
// fragment.
func inferKind(s *openapi3.Schema) ir.IRSchemaKind {
	var types []string
	if s.Type != nil {
		for _, t := range s.Type.Slice() {
			if t != openapi3.TypeNull {
				types = append(types, t)
			}
		}
		if len(types) == 0 && s.Type.Includes(openapi3.TypeNull) {
			return ir.IRKindNull
		}
	}
	if len(types) > 1 {
		return ir.IRKindFragment
	}
	if len(types) == 1 {
		switch types[0] {
		case openapi3.TypeString:
			return ir.IRKindString
		case openapi3.TypeInteger:
			return ir.IRKindInteger
		case openapi3.TypeNumber:
			return ir.IRKindNumber
		case openapi3.TypeBoolean:
			return ir.IRKindBoolean
		case openapi3.TypeArray:
			return ir.IRKindArray
		case openapi3.TypeObject:
			return ir.IRKindObject
		}
		return ir.IRKindFragment
	}
	switch {
	case len(s.Properties) > 0 || s.AdditionalProperties.Schema != nil || s.AdditionalProperties.Has != nil:
		return ir.IRKindObject
	case s.Items != nil:
		return ir.IRKindArray
	case len(s.Enum) > 0:
		return inferEnumBaseKind(s)
	}
	return ir.IRKindFragment
}

// extractAnnotations extracts annotations from a schema reference
func extractAnnotations(sr *openapi3.SchemaRef) ir.IRAnnotations {
	var a ir.IRAnnotations
	if sr == nil || sr.Value == nil {
		return a
	}
	s := sr.Value
	a.Title = s.Title
	a.Description = s.Description
	a.Deprecated = s.Deprecated
	a.ReadOnly = s.ReadOnly
	a.WriteOnly = s.WriteOnly
	a.Default = s.Default
	if s.Example != nil {
		a.Examples = []any{s.Example}
	}
	return a
}

// inferEnumBaseKind infers the kind of an untyped enum from its first value
func inferEnumBaseKind(s *openapi3.Schema) ir.IRSchemaKind {
	for _, v := range s.Enum {
		switch v.(type) {
		case string:
			return ir.IRKindString
		case int, int32, int64:
			return ir.IRKindInteger
		case float32, float64:
			return ir.IRKindNumber
		case bool:
			return ir.IRKindBoolean
		}
	}
	return ir.IRKindFragment
}
