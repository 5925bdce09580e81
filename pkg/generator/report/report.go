// Package report renders the names assigned to a document as a JSON or
// YAML listing.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/typename"
)

// Format of an encoded report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a report format. An empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected %q or %q)", s, FormatJSON, FormatYAML)
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	return "." + string(f)
}

// Report lists every assigned type name.
type Report struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Types       []Entry           `json:"types" yaml:"types"`
	Operations  []Operation       `json:"operations,omitempty" yaml:"operations,omitempty"`
	Boxed       []string          `json:"boxed,omitempty" yaml:"boxed,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Entry is one declared type.
type Entry struct {
	Identifier string  `json:"identifier" yaml:"identifier"`
	JSONPath   string  `json:"jsonPath,omitempty" yaml:"jsonPath,omitempty"`
	Kind       string  `json:"kind" yaml:"kind"`
	Boxed      bool    `json:"boxed,omitempty" yaml:"boxed,omitempty"`
	Fields     []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is one member of a declared type.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	JSONName string `json:"jsonName,omitempty" yaml:"jsonName,omitempty"`
	Type     string `json:"type" yaml:"type"`
}

// Operation names the input and output types of one operation.
type Operation struct {
	OperationID string `json:"operationId" yaml:"operationId"`
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	Tag         string `json:"tag" yaml:"tag"`
	Input       string `json:"input" yaml:"input"`
	Output      string `json:"output" yaml:"output"`
}

// Build collects the names of in.
func Build(name string, in ir.IR) Report {
	r := Report{Name: name, Types: []Entry{}, Boxed: in.Boxed, Diagnostics: in.Diagnostics}
	add := func(d ir.IRDecl) {
		r.Types = append(r.Types, entry(d))
	}
	for _, top := range in.Components() {
		top.Walk(add)
	}
	for _, op := range in.Operations() {
		op.Input.Walk(add)
		op.Output.Walk(add)
		r.Operations = append(r.Operations, Operation{
			OperationID: op.OperationID,
			Method:      op.Method,
			Path:        op.Path,
			Tag:         op.Tag,
			Input:       op.Input.Name.FullyQualifiedName(),
			Output:      op.Output.Name.FullyQualifiedName(),
		})
	}
	return r
}

func entry(d ir.IRDecl) Entry {
	e := Entry{
		Identifier: d.Name.FullyQualifiedName(),
		JSONPath:   jsonPath(d.Name),
		Kind:       string(d.Kind),
		Boxed:      d.Boxed,
	}
	for _, f := range d.Fields {
		e.Fields = append(e.Fields, Field{Name: f.Name, JSONName: f.JSONName, Type: f.Type.String()})
	}
	for _, c := range d.EnumCases {
		e.Fields = append(e.Fields, Field{Name: c.Name, JSONName: c.Value, Type: d.EnumBase.FullyQualifiedName()})
	}
	return e
}

func jsonPath(name typename.TypeName) string {
	p, _ := name.FullyQualifiedJSONPath()
	return p
}

// Encode writes r to w in format f.
func (r Report) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	default:
		data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
}

// ReportGenerator implements the Generator interface by writing the names
// report next to the other outputs.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GetType returns the generator type identifier
func (g *ReportGenerator) GetType() string {
	return "report"
}

// Generate writes names.json or names.yaml into the client's output directory.
func (g *ReportGenerator) Generate(client config.Client, in ir.IR) error {
	format, err := ParseFormat(client.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(client.OutDir, 0o755); err != nil {
		return err
	}
	target := filepath.Join(client.OutDir, "names"+format.Extension())
	if client.ShouldExcludeFile(target) {
		return nil
	}

	var buf bytes.Buffer
	if err := Build(client.Name, in).Encode(&buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return nil
}
