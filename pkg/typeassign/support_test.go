package typeassign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/typegen/pkg/ir"
)

func TestIsSchemaSupported(t *testing.T) {
	str := req(ir.IRSchema{Kind: ir.IRKindString})
	resolver := mapResolver{
		"Pet":      object(ir.IRField{Name: "name", Type: str}),
		"Name":     str,
		"Composed": req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("Pet")}}),
		"Not":      req(ir.IRSchema{Kind: ir.IRKindNot, Not: str}),
	}

	tests := []struct {
		name   string
		schema *ir.IRSchema
		reason UnsupportedReason
	}{
		{name: "string", schema: str},
		{name: "fragment", schema: req(ir.IRSchema{Kind: ir.IRKindFragment})},
		{name: "object with unsupported property", schema: object(ir.IRField{Name: "n", Type: req(ir.IRSchema{Kind: ir.IRKindNull})})},
		{name: "untyped array", schema: req(ir.IRSchema{Kind: ir.IRKindArray})},
		{name: "array of not", schema: req(ir.IRSchema{Kind: ir.IRKindArray, Items: req(ir.IRSchema{Kind: ir.IRKindNot})}), reason: ReasonSchemaType},
		{name: "ref to object", schema: ref("Pet")},
		{name: "ref to not", schema: ref("Not"), reason: ReasonSchemaType},
		{name: "not", schema: req(ir.IRSchema{Kind: ir.IRKindNot, Not: str}), reason: ReasonSchemaType},
		{name: "null", schema: req(ir.IRSchema{Kind: ir.IRKindNull}), reason: ReasonSchemaType},
		{name: "empty allOf", schema: req(ir.IRSchema{Kind: ir.IRKindAllOf}), reason: ReasonNoSubschemas},
		{name: "empty anyOf", schema: req(ir.IRSchema{Kind: ir.IRKindAnyOf}), reason: ReasonNoSubschemas},
		{name: "empty oneOf", schema: req(ir.IRSchema{Kind: ir.IRKindOneOf}), reason: ReasonNoSubschemas},
		{name: "allOf of objects", schema: req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("Pet"), object(), ref("Composed")}})},
		{name: "allOf with string", schema: req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("Pet"), str}}), reason: ReasonNotObjectish},
		{name: "anyOf with ref to string", schema: req(ir.IRSchema{Kind: ir.IRKindAnyOf, AnyOf: []*ir.IRSchema{ref("Name")}}), reason: ReasonNotObjectish},
		{name: "anyOf with nested allOf", schema: req(ir.IRSchema{Kind: ir.IRKindAnyOf, AnyOf: []*ir.IRSchema{req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{object()}})}})},
		{name: "oneOf of anything", schema: req(ir.IRSchema{Kind: ir.IRKindOneOf, OneOf: []*ir.IRSchema{str, ref("Pet"), object()}})},
		{name: "oneOf with unsupported child", schema: req(ir.IRSchema{Kind: ir.IRKindOneOf, OneOf: []*ir.IRSchema{str, req(ir.IRSchema{Kind: ir.IRKindNull})}}), reason: ReasonSchemaType},
		{
			name:   "discriminated oneOf of refs",
			schema: req(ir.IRSchema{Kind: ir.IRKindOneOf, OneOf: []*ir.IRSchema{ref("Pet"), ref("Composed")}, Discriminator: &ir.IRDiscriminator{PropertyName: "kind"}}),
		},
		{
			name:   "discriminated oneOf with inline child",
			schema: req(ir.IRSchema{Kind: ir.IRKindOneOf, OneOf: []*ir.IRSchema{ref("Pet"), object()}, Discriminator: &ir.IRDiscriminator{PropertyName: "kind"}}),
			reason: ReasonNotRef,
		},
		{
			name:   "discriminated oneOf with ref to string",
			schema: req(ir.IRSchema{Kind: ir.IRKindOneOf, OneOf: []*ir.IRSchema{ref("Name")}, Discriminator: &ir.IRDiscriminator{PropertyName: "kind"}}),
			reason: ReasonNotObjectish,
		},
	}

	checker := NewSupportChecker(resolver)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := NewReferenceStack()
			got, err := checker.IsSchemaSupported(tt.schema, refs)
			require.NoError(t, err)
			assert.Equal(t, 0, refs.Len(), "reference stack must be empty afterwards")
			if tt.reason == "" {
				assert.True(t, got.Supported, got.String())
				return
			}
			assert.False(t, got.Supported)
			assert.Equal(t, tt.reason, got.Reason)
			assert.NotNil(t, got.Schema)
		})
	}
}

func TestIsSchemaSupportedTerminatesOnCycles(t *testing.T) {
	resolver := mapResolver{
		"Self":   req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("Self")}}),
		"A":      req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("B")}}),
		"B":      req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("A"), object()}}),
		"Choice": req(ir.IRSchema{Kind: ir.IRKindAnyOf, AnyOf: []*ir.IRSchema{ref("Mixed")}}),
		"Mixed":  req(ir.IRSchema{Kind: ir.IRKindAllOf, AllOf: []*ir.IRSchema{ref("Choice"), object()}}),
		"Loop":   ref("Loop"),
	}
	tests := []struct {
		key    string
		reason UnsupportedReason
	}{
		{key: "Self"},
		{key: "A"},
		{key: "B"},
		{key: "Loop"},
		{key: "Choice"},
		// an anyOf is never object-ish, so an allOf over one is rejected
		{key: "Mixed", reason: ReasonNotObjectish},
	}

	checker := NewSupportChecker(resolver)
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			refs := NewReferenceStack()
			got, err := checker.IsSchemaSupported(ref(tt.key), refs)
			require.NoError(t, err)
			assert.Equal(t, 0, refs.Len(), "reference stack must be empty afterwards")
			if tt.reason == "" {
				assert.True(t, got.Supported, got.String())
				return
			}
			assert.False(t, got.Supported)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestIsSchemaSupportedPropagatesLookupErrors(t *testing.T) {
	checker := NewSupportChecker(mapResolver{})
	refs := NewReferenceStack()

	_, err := checker.IsSchemaSupported(ref("Missing"), refs)
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 0, refs.Len())

	_, err = checker.IsSchemaSupported(&ir.IRSchema{Kind: ir.IRKindRef, Ref: "#/components/responses/X"}, refs)
	assert.ErrorIs(t, err, ErrReference)
	assert.Equal(t, 0, refs.Len())
}

func TestReferenceStack(t *testing.T) {
	s := NewReferenceStack()
	s.Push("a")
	s.Push("b")
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	s.Pop()
	assert.False(t, s.Contains("b"))
	assert.Equal(t, 1, s.Len())
	s.Pop()
	assert.Panics(t, func() { s.Pop() })
}
