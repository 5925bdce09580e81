package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/typename"
)

var schemas = typename.FromComponents(
	typename.JSONComponent("#"),
	typename.BothComponent("Components", "components"),
	typename.BothComponent("Schemas", "schemas"),
)

func sampleIR() ir.IR {
	node := schemas.Appending("Node", "Node")
	input := typename.FromComponents(typename.JSONComponent("#"), typename.BothComponent("Operations", "paths")).
		AppendingJSON("~1nodes").
		Appending("getNode", "get")
	return ir.IR{
		Schemas: []ir.IRDecl{{
			Kind:  ir.DeclStruct,
			Name:  node,
			Boxed: true,
			Fields: []ir.IRDeclField{
				{Name: "next", JSONName: "next", Type: node.AsUsage().AsOptional()},
			},
		}},
		Services: []ir.IRService{{
			Tag: "nodes",
			Operations: []ir.IROperation{{
				OperationID: "getNode",
				Method:      "GET",
				Path:        "/nodes",
				Tag:         "nodes",
				Input:       ir.IRDecl{Kind: ir.DeclStruct, Name: input.AppendingIdentifier("Input")},
				Output:      ir.IRDecl{Kind: ir.DeclStruct, Name: input.Appending("Output", "responses")},
			}},
		}},
		Boxed:       []string{"Components.Schemas.Node"},
		Diagnostics: []diag.Diagnostic{{Severity: diag.SeverityWarning, Message: "schema unsupported: notRef", Context: "#/components/schemas/Bad"}},
	}
}

func TestBuild(t *testing.T) {
	r := Build("nodes", sampleIR())

	require.Len(t, r.Types, 3)
	assert.Equal(t, Entry{
		Identifier: "Components.Schemas.Node",
		JSONPath:   "#/components/schemas/Node",
		Kind:       "struct",
		Boxed:      true,
		Fields:     []Field{{Name: "next", JSONName: "next", Type: "*Components.Schemas.Node"}},
	}, r.Types[0])
	assert.Equal(t, "Operations.getNode.Input", r.Types[1].Identifier)
	assert.Equal(t, "#/paths/~1nodes/get", r.Types[1].JSONPath)
	assert.Equal(t, "#/paths/~1nodes/get/responses", r.Types[2].JSONPath)

	require.Len(t, r.Operations, 1)
	assert.Equal(t, "Operations.getNode.Output", r.Operations[0].Output)
	assert.Equal(t, []string{"Components.Schemas.Node"}, r.Boxed)
	assert.Len(t, r.Diagnostics, 1)
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build("nodes", sampleIR()).Encode(&buf, FormatJSON))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, Build("nodes", sampleIR()), decoded)
	assert.Contains(t, buf.String(), `"identifier": "Components.Schemas.Node"`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build("nodes", sampleIR()).Encode(&buf, FormatYAML))

	var decoded Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Components.Schemas.Node", decoded.Types[0].Identifier)
	assert.Equal(t, diag.SeverityWarning, decoded.Diagnostics[0].Severity)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	client := config.Client{Type: "report", OutDir: t.TempDir(), PackageName: "nodes", Name: "Nodes", Format: "yaml"}
	require.NoError(t, NewReportGenerator().Generate(client, sampleIR()))

	data, err := os.ReadFile(filepath.Join(client.OutDir, "names.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "identifier: Components.Schemas.Node")

	client.ExcludeFiles = []string{"names.json"}
	client.Format = "json"
	require.NoError(t, NewReportGenerator().Generate(client, sampleIR()))
	assert.NoFileExists(t, filepath.Join(client.OutDir, "names.json"))
}
