// Package typegen assigns stable, collision-free type names to every schema,
// parameter, body and response of an OpenAPI document, detects the
// recursive types that need indirection, and renders the result as Go types
// or as a names report.
//
// Quick Start:
//
//	import "github.com/blimu-dev/typegen"
//
//	// Generate Go types for a document
//	err := typegen.GenerateGoTypes(
//		"https://petstore3.swagger.io/api/v3/openapi.json",
//		"./petstore",
//		"petstore",
//		"idiomatic",
//	)
//
// For more advanced usage, see the generator package.
package typegen

import (
	"github.com/blimu-dev/typegen/pkg/generator"
	"github.com/blimu-dev/typegen/pkg/ir"
)

// GenerateGoTypes writes the Go types of the document at spec into outDir.
//
// Parameters:
//   - spec: Path to OpenAPI specification file or HTTP(S) URL
//   - outDir: Output directory for the generated package
//   - packageName: Go package name of the generated file
//   - namingStrategy: "defensive" (default) or "idiomatic"
func GenerateGoTypes(spec, outDir, packageName, namingStrategy string) error {
	return generator.GenerateGoTypes(spec, outDir, packageName, namingStrategy)
}

// GenerateTypes generates output with full configuration options.
//
// Example:
//
//	err := typegen.GenerateTypes(typegen.GenerateTypesOptions{
//		Spec:        "./openapi.yaml",
//		Type:        "go",
//		OutDir:      "./api",
//		PackageName: "api",
//		Name:        "api",
//		IncludeTags: []string{"users", "orders"},
//		ExcludeTags: []string{"internal"},
//	})
func GenerateTypes(opts GenerateTypesOptions) error {
	return generator.GenerateTypes(generator.GenerateTypesOptions(opts))
}

// GenerateTypesOptions mirrors generator.GenerateTypesOptions.
type GenerateTypesOptions struct {
	ConfigPath     string
	SingleClient   string
	Spec           string
	Type           string
	OutDir         string
	PackageName    string
	Name           string
	NamingStrategy string
	IncludeTags    []string
	ExcludeTags    []string
}

// GenerateFromConfig generates every client of a YAML configuration file.
// Optionally, a single client name limits generation to that client.
func GenerateFromConfig(configPath string, singleClient ...string) error {
	return generator.GenerateFromConfig(configPath, singleClient...)
}

// ComputeNames returns the named types of the document at spec without
// writing anything.
func ComputeNames(spec, namingStrategy string) (ir.IR, error) {
	return generator.ComputeNames(spec, namingStrategy)
}

// ValidateSpec validates an OpenAPI specification file.
func ValidateSpec(specPath string) error {
	return generator.ValidateSpec(specPath)
}
