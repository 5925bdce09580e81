package golang

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/typename"
)

var schemasRoot = typename.FromComponents(
	typename.JSONComponent("#"),
	typename.BothComponent("Components", "components"),
	typename.BothComponent("Schemas", "schemas"),
)

func TestGoIdent(t *testing.T) {
	tests := []struct {
		name     typename.TypeName
		expected string
	}{
		{schemasRoot.Appending("Pet", "Pet"), "Pet"},
		{schemasRoot.Appending("Pet", "Pet").Appending("KindPayload", "kind"), "Pet_KindPayload"},
		{schemasRoot.Appending("_3rd", "3rd"), "X_3rd"},
		{typename.New("Components", "Parameters", "limit"), "Parameters_limit"},
		{typename.New("Operations", "listPets", "Input"), "Operations_listPets_Input"},
	}

	for _, test := range tests {
		result := goIdent(test.name)
		if result != test.expected {
			t.Errorf("goIdent(%s) = %q, expected %q", test.name.FullyQualifiedName(), result, test.expected)
		}
	}
}

func TestGoType(t *testing.T) {
	pet := schemasRoot.Appending("Pet", "Pet")
	tests := []struct {
		name     string
		usage    typename.Usage
		expected string
	}{
		{"builtin", typename.String.AsUsage(), "string"},
		{"time", typename.Time.AsUsage(), "time.Time"},
		{"declared", pet.AsUsage(), "Pet"},
		{"optional", pet.AsUsage().AsOptional(), "*Pet"},
		{"array", pet.AsUsage().AsArray(), "[]Pet"},
		{"optional array", pet.AsUsage().AsArray().AsOptional(), "[]Pet"},
		{"optional any", typename.Any.AsUsage().AsOptional(), "any"},
		{"dictionary", typename.Int64.AsUsage().AsDictionaryValue(), "map[string]int64"},
		{"bytes", typename.Byte.AsUsage().AsArray(), "[]byte"},
		{"array of optional", pet.AsUsage().AsOptional().AsArray(), "[]*Pet"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := goType(test.usage)
			if result != test.expected {
				t.Errorf("goType(%s) = %q, expected %q", test.usage, result, test.expected)
			}
		})
	}
}

func TestFieldTypeBoxed(t *testing.T) {
	node := schemasRoot.Appending("Node", "Node")
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: node, Boxed: true}

	required := ir.IRDeclField{Name: "next", JSONName: "next", Type: node.AsUsage(), Required: true}
	if got := fieldType(decl, required); got != "*Node" {
		t.Errorf("boxed required field = %q, expected *Node", got)
	}

	builtin := ir.IRDeclField{Name: "name", JSONName: "name", Type: typename.String.AsUsage(), Required: true}
	if got := fieldType(decl, builtin); got != "string" {
		t.Errorf("boxed builtin field = %q, expected string", got)
	}

	children := ir.IRDeclField{Name: "children", JSONName: "children", Type: node.AsUsage().AsArray(), Required: true}
	if got := fieldType(decl, children); got != "[]Node" {
		t.Errorf("boxed array field = %q, expected []Node", got)
	}

	decl.Boxed = false
	if got := fieldType(decl, required); got != "Node" {
		t.Errorf("unboxed field = %q, expected Node", got)
	}
}

func TestStructTag(t *testing.T) {
	strct := ir.IRDecl{Kind: ir.DeclStruct}
	tests := []struct {
		decl     ir.IRDecl
		field    ir.IRDeclField
		expected string
	}{
		{strct, ir.IRDeclField{JSONName: "name", Required: true}, "`json:\"name\"`"},
		{strct, ir.IRDeclField{JSONName: "tag"}, "`json:\"tag,omitempty\"`"},
		{strct, ir.IRDeclField{}, "`json:\"-\"`"},
		{ir.IRDecl{Kind: ir.DeclOneOf}, ir.IRDeclField{JSONName: "value1"}, "`json:\"-\"`"},
	}

	for _, test := range tests {
		result := structTag(test.decl, test.field)
		if result != test.expected {
			t.Errorf("structTag(%+v) = %s, expected %s", test.field, result, test.expected)
		}
	}
}

func TestExported(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "X"},
		{"pet", "Pet"},
		{"Pet", "Pet"},
		{"_type", "X_type"},
		{"élan", "Élan"},
		{"1st", "X1st"},
	}

	for _, test := range tests {
		result := exported(test.input)
		if result != test.expected {
			t.Errorf("exported(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestExportedMember(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"_type", "Type"},
		{"__range", "Range"},
		{"_3rdParty", "X3rdParty"},
		{"userId", "UserId"},
		{"_", "X_"},
		{"", "X"},
	}

	for _, test := range tests {
		result := exportedMember(test.input)
		if result != test.expected {
			t.Errorf("exportedMember(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestEnumValue(t *testing.T) {
	if got := enumValue(typename.String, ir.IREnumCase{Value: "a\"b", Raw: "a\"b"}); got != `"a\"b"` {
		t.Errorf("string enum value = %s", got)
	}
	if got := enumValue(typename.Int64, ir.IREnumCase{Value: "2", Raw: float64(2)}); got != "2" {
		t.Errorf("integer enum value = %s", got)
	}
	if got := enumValue(typename.Bool, ir.IREnumCase{Value: "true", Raw: true}); got != "true" {
		t.Errorf("bool enum value = %s", got)
	}
}

func TestSanitizePackageName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"petstore", "petstore"},
		{"github.com/acme/pet-store", "petstore"},
		{"Café", "cafe"},
		{"3d", "pkg3d"},
		{"---", "types"},
	}

	for _, test := range tests {
		result := sanitizePackageName(test.input)
		if result != test.expected {
			t.Errorf("sanitizePackageName(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestFormatGoComment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Single line comment", "// Single line comment"},
		{"Line 1\nLine 2", "// Line 1\n// Line 2"},
		{"Line 1\n\nLine 3", "// Line 1\n//\n// Line 3"},
		{"  Indented line  \n  Another indented  ", "// Indented line\n// Another indented"},
		{"Trailing newline\n", "// Trailing newline"},
	}

	for _, test := range tests {
		result := formatGoComment(test.input)
		if result != test.expected {
			t.Errorf("formatGoComment(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestGenerateWritesTypes(t *testing.T) {
	pet := schemasRoot.Appending("Pet", "Pet")
	kind := pet.Appending("KindPayload", "kind")
	node := schemasRoot.Appending("Node", "Node")
	in := ir.IR{
		Schemas: []ir.IRDecl{
			{
				Kind: ir.DeclStruct,
				Name: pet,
				Fields: []ir.IRDeclField{
					{Name: "name", JSONName: "name", Type: typename.String.AsUsage(), Required: true},
					{Name: "kind", JSONName: "kind", Type: kind.AsUsage().AsOptional()},
					{Name: "born", JSONName: "born", Type: typename.Time.AsUsage().AsOptional()},
				},
				Nested: []ir.IRDecl{{
					Kind:      ir.DeclEnum,
					Name:      kind,
					EnumBase:  typename.String,
					EnumCases: []ir.IREnumCase{{Name: "dog", Value: "dog"}, {Name: "cat", Value: "cat"}},
				}},
				Annotations: ir.IRAnnotations{Description: "A pet."},
			},
			{
				Kind:   ir.DeclStruct,
				Name:   node,
				Boxed:  true,
				Fields: []ir.IRDeclField{{Name: "next", JSONName: "next", Type: node.AsUsage(), Required: true}},
			},
		},
	}
	client := config.Client{Type: "go", OutDir: t.TempDir(), PackageName: "petstore", Name: "Petstore"}

	if err := NewGoGenerator().Generate(client, in); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(client.OutDir, "types.go"))
	if err != nil {
		t.Fatalf("reading types.go: %v", err)
	}
	src := strings.Join(strings.Fields(string(data)), " ")

	for _, want := range []string{
		"package petstore",
		`import "time"`,
		"// A pet. type Pet struct {",
		"Name string `json:\"name\"`",
		"Kind *Pet_KindPayload `json:\"kind,omitempty\"`",
		"Born *time.Time `json:\"born,omitempty\"`",
		"type Pet_KindPayload string",
		`Pet_KindPayloadDog Pet_KindPayload = "dog"`,
		"Next *Node `json:\"next\"`",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("types.go missing %q\n%s", want, data)
		}
	}
}

func TestGenerateRejectsDuplicateIdentifiers(t *testing.T) {
	in := ir.IR{
		Schemas: []ir.IRDecl{
			{Kind: ir.DeclAlias, Name: schemasRoot.Appending("Pet_Kind", "Pet_Kind"), Target: typename.String.AsUsage()},
			{
				Kind:   ir.DeclStruct,
				Name:   schemasRoot.Appending("Pet", "Pet"),
				Nested: []ir.IRDecl{{Kind: ir.DeclAlias, Name: schemasRoot.Appending("Pet", "Pet").Appending("Kind", "kind"), Target: typename.String.AsUsage()}},
			},
		},
	}
	client := config.Client{Type: "go", OutDir: t.TempDir(), PackageName: "petstore", Name: "Petstore"}

	if err := NewGoGenerator().Generate(client, in); err == nil {
		t.Fatal("Generate() expected duplicate identifier error")
	}
}

func TestDeclComment(t *testing.T) {
	shape := schemasRoot.Appending("Shape", "Shape")
	tests := []struct {
		decl     ir.IRDecl
		expected string
	}{
		{ir.IRDecl{Kind: ir.DeclAllOf, Name: shape}, "Shape composes its values with allOf."},
		{
			ir.IRDecl{Kind: ir.DeclOneOf, Name: shape, Discriminator: &ir.IRDiscriminator{PropertyName: "kind"}},
			`Shape composes its values with oneOf. Discriminated by "kind".`,
		},
		{
			ir.IRDecl{Kind: ir.DeclStruct, Name: shape, Annotations: ir.IRAnnotations{Description: "A shape.", Deprecated: true}},
			"A shape.\n\nDeprecated: marked deprecated in the document.",
		},
	}

	for _, test := range tests {
		result := declComment(test.decl)
		if result != test.expected {
			t.Errorf("declComment(%s) = %q, expected %q", test.decl.Kind, result, test.expected)
		}
	}
}
