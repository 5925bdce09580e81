package golang

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/ir"
)

//go:embed templates/*
var templatesFS embed.FS

// GoGenerator implements the Generator interface for Go
type GoGenerator struct{}

// NewGoGenerator creates a new Go generator
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

// GetType returns the generator type identifier
func (g *GoGenerator) GetType() string {
	return "go"
}

// declView is one flattened declaration as the template sees it.
type declView struct {
	Kind       string
	Ident      string
	Comment    string
	Underlying string
	Fields     []fieldView
	Cases      []caseView
}

type fieldView struct {
	Name    string
	Type    string
	Tag     string
	Comment string
}

type caseView struct {
	Name  string
	Value string
}

// Generate writes types.go with every declaration of in
func (g *GoGenerator) Generate(client config.Client, in ir.IR) error {
	// Create directory structure
	if err := os.MkdirAll(client.OutDir, 0o755); err != nil {
		return err
	}

	decls, err := buildViews(in)
	if err != nil {
		return err
	}

	funcMap := template.FuncMap{
		"formatGoComment": formatGoComment,
		"packageName":     func() string { return sanitizePackageName(client.PackageName) },
	}

	// Merge sprig functions
	for k, v := range sprig.TxtFuncMap() {
		if _, ok := funcMap[k]; !ok {
			funcMap[k] = v
		}
	}

	return renderFile(client, "types.go.gotmpl", filepath.Join(client.OutDir, "types.go"), funcMap, map[string]any{"Client": client, "Decls": decls})
}

// buildViews flattens every declaration of in, nested ones included, in
// emission order.
func buildViews(in ir.IR) ([]declView, error) {
	var all []ir.IRDecl
	for _, top := range in.Components() {
		top.Walk(func(d ir.IRDecl) { all = append(all, d) })
	}
	for _, op := range in.Operations() {
		op.Input.Walk(func(d ir.IRDecl) { all = append(all, d) })
		op.Output.Walk(func(d ir.IRDecl) { all = append(all, d) })
	}

	owners := map[string]string{}
	views := make([]declView, 0, len(all))
	for _, d := range all {
		ident := goIdent(d.Name)
		if prev, ok := owners[ident]; ok {
			return nil, fmt.Errorf("go identifier %s is used by both %s and %s", ident, prev, d.Name.FullyQualifiedName())
		}
		owners[ident] = d.Name.FullyQualifiedName()
		views = append(views, declViewFor(d, ident))
	}
	return views, nil
}

func declViewFor(d ir.IRDecl, ident string) declView {
	v := declView{Ident: ident, Comment: declComment(d)}
	switch d.Kind {
	case ir.DeclAlias:
		v.Kind = "alias"
		v.Underlying = goType(d.Target)
	case ir.DeclEnum:
		v.Kind = "enum"
		v.Underlying = typeRef(d.EnumBase)
		used := map[string]bool{}
		for _, c := range d.EnumCases {
			name := uniqueName(ident+exportedMember(c.Name), used)
			v.Cases = append(v.Cases, caseView{Name: name, Value: enumValue(d.EnumBase, c)})
		}
	default:
		v.Kind = "struct"
		used := map[string]bool{}
		for _, f := range d.Fields {
			v.Fields = append(v.Fields, fieldView{
				Name:    uniqueName(exportedMember(f.Name), used),
				Type:    fieldType(d, f),
				Tag:     structTag(d, f),
				Comment: f.Annotations.Description,
			})
		}
		if d.AdditionalProperties != nil {
			v.Fields = append(v.Fields, fieldView{
				Name: uniqueName("AdditionalProperties", used),
				Type: "map[string]" + goType(*d.AdditionalProperties),
				Tag:  "`json:\"-\"`",
			})
		}
	}
	return v
}

func declComment(d ir.IRDecl) string {
	comment := d.Annotations.Description
	switch d.Kind {
	case ir.DeclAllOf, ir.DeclAnyOf, ir.DeclOneOf:
		note := fmt.Sprintf("%s composes its values with %s.", goIdent(d.Name), d.Kind)
		if d.Discriminator != nil && d.Discriminator.PropertyName != "" {
			note += fmt.Sprintf(" Discriminated by %q.", d.Discriminator.PropertyName)
		}
		if comment != "" {
			comment += "\n\n"
		}
		comment += note
	}
	if d.Annotations.Deprecated {
		if comment != "" {
			comment += "\n\n"
		}
		comment += "Deprecated: marked deprecated in the document."
	}
	return comment
}

// uniqueName returns name, suffixed with a counter when used already holds it.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = name + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

// renderFile renders a template file to the target path
func renderFile(client config.Client, templateName, targetPath string, funcMap template.FuncMap, data map[string]any) error {
	// Check if file should be excluded
	if client.ShouldExcludeFile(targetPath) {
		return nil // Skip this file silently
	}

	tmplContent, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	src, err := formatAndFixImports(filepath.Base(targetPath), buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", targetPath, err)
	}

	if err := os.WriteFile(targetPath, src, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", targetPath, err)
	}

	return nil
}
