package ir

import "github.com/blimu-dev/typegen/pkg/typename"

// IRDeclKind is the shape of a generated declaration.
type IRDeclKind string

const (
	DeclStruct IRDeclKind = "struct"
	DeclAlias  IRDeclKind = "alias"
	DeclEnum   IRDeclKind = "enum"
	DeclAllOf  IRDeclKind = "allOf"
	DeclAnyOf  IRDeclKind = "anyOf"
	DeclOneOf  IRDeclKind = "oneOf"
)

// IsBoxable reports whether declarations of this kind can hold a recursive
// reference indirectly.
func (k IRDeclKind) IsBoxable() bool {
	switch k {
	case DeclStruct, DeclAllOf, DeclAnyOf, DeclOneOf:
		return true
	}
	return false
}

// IRDecl is a named declaration produced by the translation pass.
type IRDecl struct {
	Kind IRDeclKind
	Name typename.TypeName

	// Struct and composite members, in document order.
	Fields []IRDeclField
	// AdditionalProperties is the value usage of a typed additional
	// properties map, nil otherwise.
	AdditionalProperties *typename.Usage

	// Alias target.
	Target typename.Usage

	// Enum base type and cases.
	EnumBase  typename.TypeName
	EnumCases []IREnumCase

	Discriminator *IRDiscriminator

	// Nested holds the inline declarations scoped under this one.
	Nested []IRDecl
	Boxed  bool

	Annotations IRAnnotations
}

// IRDeclField is a member of a struct or composite declaration.
type IRDeclField struct {
	Name        string
	JSONName    string
	Type        typename.Usage
	Required    bool
	Annotations IRAnnotations
}

// IREnumCase is one allowed value of an enum declaration.
type IREnumCase struct {
	Name  string
	Value string
	Raw   any
}

// Walk calls fn for d and every nested declaration, depth first.
func (d IRDecl) Walk(fn func(IRDecl)) {
	fn(d)
	for _, n := range d.Nested {
		n.Walk(fn)
	}
}

// Usages returns every type usage of d itself, not of its nested declarations.
func (d IRDecl) Usages() []typename.Usage {
	var out []typename.Usage
	for _, f := range d.Fields {
		out = append(out, f.Type)
	}
	if d.AdditionalProperties != nil {
		out = append(out, *d.AdditionalProperties)
	}
	if d.Kind == DeclAlias {
		out = append(out, d.Target)
	}
	return out
}
