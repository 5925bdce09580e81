package generator

import (
	"path/filepath"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// GenerateTypes is a convenience function for generating with minimal configuration
func GenerateTypes(opts GenerateTypesOptions) error {
	service := NewService()

	genOpts := GenerateOptions{
		ConfigPath:   opts.ConfigPath,
		SingleClient: opts.SingleClient,
		Fallback: FallbackOptions{
			Spec:           opts.Spec,
			Type:           opts.Type,
			OutDir:         opts.OutDir,
			PackageName:    opts.PackageName,
			Name:           opts.Name,
			NamingStrategy: opts.NamingStrategy,
			IncludeTags:    opts.IncludeTags,
			ExcludeTags:    opts.ExcludeTags,
		},
	}

	return service.Generate(genOpts)
}

// GenerateTypesOptions contains options for the convenience GenerateTypes function
type GenerateTypesOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// SingleClient generates only the named client from config (optional)
	SingleClient string

	// Fallback options when no config file is provided
	Spec           string   // OpenAPI spec file or URL
	Type           string   // Generator type (e.g., "go")
	OutDir         string   // Output directory
	PackageName    string   // Package name for the generated code
	Name           string   // Client name
	NamingStrategy string   // "defensive" or "idiomatic"
	IncludeTags    []string // Regex patterns for tags to include
	ExcludeTags    []string // Regex patterns for tags to exclude
}

// GenerateGoTypes is a convenience function specifically for Go type generation
func GenerateGoTypes(spec, outDir, packageName, namingStrategy string) error {
	// Ensure absolute path for outDir
	absOutDir, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}

	return GenerateTypes(GenerateTypesOptions{
		Spec:           spec,
		Type:           "go",
		OutDir:         absOutDir,
		PackageName:    packageName,
		Name:           packageName,
		NamingStrategy: namingStrategy,
	})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(configPath string, singleClient ...string) error {
	service := NewService()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	onlyClient := ""
	if len(singleClient) > 0 {
		onlyClient = singleClient[0]
	}

	return service.GenerateFromConfig(cfg, onlyClient)
}

// ComputeNames assigns names to every type of the document at specPath
// using the given naming strategy.
func ComputeNames(specPath, namingStrategy string) (ir.IR, error) {
	return NewService().ComputeNames(specPath, &config.Config{Spec: specPath, NamingStrategy: namingStrategy})
}

// ValidateSpec validates an OpenAPI specification
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}
