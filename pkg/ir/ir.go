// Package ir is the intermediate representation shared by the translation
// pass and the emitters: converted OpenAPI schemas on one side, named
// declarations on the other.
package ir

import "github.com/blimu-dev/typegen/pkg/diag"

// IR represents the complete intermediate representation of an OpenAPI spec
type IR struct {
	Schemas       []IRDecl
	Parameters    []IRDecl
	Headers       []IRDecl
	RequestBodies []IRDecl
	Responses     []IRDecl
	Services      []IRService
	// Boxed lists the fully-qualified names of declarations that hold
	// their recursive fields indirectly, in document order.
	Boxed       []string
	Diagnostics []diag.Diagnostic
}

// Components returns all component declarations in emission order.
func (r IR) Components() []IRDecl {
	out := make([]IRDecl, 0, len(r.Schemas)+len(r.Parameters)+len(r.Headers)+len(r.RequestBodies)+len(r.Responses))
	out = append(out, r.Schemas...)
	out = append(out, r.Parameters...)
	out = append(out, r.Headers...)
	out = append(out, r.RequestBodies...)
	out = append(out, r.Responses...)
	return out
}

// Operations returns the operations of every service in order.
func (r IR) Operations() []IROperation {
	var out []IROperation
	for _, s := range r.Services {
		out = append(out, s.Operations...)
	}
	return out
}

// IRService represents a group of operations, typically grouped by tag
type IRService struct {
	Tag        string
	Operations []IROperation
}

// IROperation represents a single API operation (endpoint + method) and the
// Input and Output declarations generated for it.
type IROperation struct {
	OperationID  string
	Method       string
	Path         string
	Tag          string
	OriginalTags []string
	Summary      string
	Description  string
	Deprecated   bool
	Input        IRDecl
	Output       IRDecl
}

// IRAnnotations captures non-structural metadata that some generators may render.
type IRAnnotations struct {
	Title       string
	Description string
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Default     any
	Examples    []any
}

// IRSchemaKind represents the kind of schema
type IRSchemaKind string

const (
	IRKindFragment IRSchemaKind = "fragment"
	IRKindString   IRSchemaKind = "string"
	IRKindNumber   IRSchemaKind = "number"
	IRKindInteger  IRSchemaKind = "integer"
	IRKindBoolean  IRSchemaKind = "boolean"
	IRKindNull     IRSchemaKind = "null"
	IRKindArray    IRSchemaKind = "array"
	IRKindObject   IRSchemaKind = "object"
	IRKindRef      IRSchemaKind = "ref"
	IRKindOneOf    IRSchemaKind = "oneOf"
	IRKindAnyOf    IRSchemaKind = "anyOf"
	IRKindAllOf    IRSchemaKind = "allOf"
	IRKindNot      IRSchemaKind = "not"
)

// AdditionalPropertiesPolicy describes what an object allows beyond its
// declared properties.
type AdditionalPropertiesPolicy string

const (
	// AdditionalPropertiesUnspecified means the document is silent.
	AdditionalPropertiesUnspecified AdditionalPropertiesPolicy = "unspecified"
	AdditionalPropertiesDisallowed  AdditionalPropertiesPolicy = "disallowed"
	AdditionalPropertiesAllowAny    AdditionalPropertiesPolicy = "allowAny"
	// AdditionalPropertiesTyped means values must match AdditionalProperties.
	AdditionalPropertiesTyped AdditionalPropertiesPolicy = "typed"
)

// IRSchema models a JSON Schema (as used by OpenAPI 3.x) shape in a language-agnostic way
type IRSchema struct {
	Kind     IRSchemaKind
	Nullable bool
	// Required is set by the parent: a property listed in required, a
	// required parameter, or a top-level, item or composite child schema.
	Required bool
	Format   string

	// Object
	Properties                 []IRField
	AdditionalPropertiesPolicy AdditionalPropertiesPolicy
	AdditionalProperties       *IRSchema // set only for the typed policy

	// Array; nil for an untyped array
	Items *IRSchema

	// Allowed values on primitive kinds
	EnumValues []string // stringified values for portability
	EnumRaw    []any    // original values preserving type where possible

	// Ref is the raw $ref string, e.g. "#/components/schemas/Pet".
	Ref string

	// Compositions
	OneOf []*IRSchema
	AnyOf []*IRSchema
	AllOf []*IRSchema
	Not   *IRSchema

	// Polymorphism
	Discriminator *IRDiscriminator

	Annotations IRAnnotations
}

// IsOptional reports whether a value of this schema may be absent.
func (s IRSchema) IsOptional() bool {
	return s.Nullable || !s.Required
}

// AdditionalPolicy returns the additional properties policy, treating the
// zero value as unspecified.
func (s IRSchema) AdditionalPolicy() AdditionalPropertiesPolicy {
	if s.AdditionalPropertiesPolicy == "" {
		return AdditionalPropertiesUnspecified
	}
	return s.AdditionalPropertiesPolicy
}

// IsEnum reports whether the schema restricts its values to a fixed list.
func (s IRSchema) IsEnum() bool {
	return len(s.EnumValues) > 0
}

// Children returns the composite children for allOf, anyOf and oneOf schemas.
func (s IRSchema) Children() []*IRSchema {
	switch s.Kind {
	case IRKindAllOf:
		return s.AllOf
	case IRKindAnyOf:
		return s.AnyOf
	case IRKindOneOf:
		return s.OneOf
	}
	return nil
}

// IRField represents a field in an object schema
type IRField struct {
	Name     string
	Type     *IRSchema
	Required bool
	// Pass-through annotations commonly used by generators
	Annotations IRAnnotations
}

// IRDiscriminator represents polymorphism discriminator information
type IRDiscriminator struct {
	PropertyName string
	Mapping      map[string]string
}
