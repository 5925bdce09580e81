package cli

import (
	"errors"
	"io"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/generator"
	"github.com/blimu-dev/typegen/pkg/generator/report"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

var errMissingFlags = errors.New("either --config or all of --input, --type, --out, --client-name (and --package-name for go) must be provided")

type FallbackParams struct {
	Spec           string
	Type           string
	OutDir         string
	PackageName    string
	Name           string
	NamingStrategy string
	Format         string
	IncludeTags    []string
	ExcludeTags    []string
}

type RunGenerateParams struct {
	ConfigPath   string
	SingleClient string
	Fallback     FallbackParams
}

type RunNamesParams struct {
	Spec                string
	NamingStrategy      string
	Format              string
	FailOnNameCollision bool
}

func RunValidate(input string) error {
	return openapi.ValidateDocument(input)
}

func RunGenerate(p RunGenerateParams, logger diag.Logger) error {
	service := generator.NewService(generator.WithLogger(logger))
	if p.ConfigPath == "" {
		f := p.Fallback
		if f.Spec == "" || f.Type == "" || f.OutDir == "" || f.Name == "" || (f.Type == "go" && f.PackageName == "") {
			return errMissingFlags
		}
		f.OutDir = absPath(f.OutDir)
		return service.Generate(generator.GenerateOptions{Fallback: generator.FallbackOptions(f)})
	}

	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return err
	}
	return service.GenerateFromConfig(cfg, p.SingleClient)
}

// RunNames assigns names to the document and writes the report to w.
func RunNames(p RunNamesParams, w io.Writer, logger diag.Logger) error {
	format, err := report.ParseFormat(p.Format)
	if err != nil {
		return err
	}
	cfg := &config.Config{Spec: p.Spec, NamingStrategy: p.NamingStrategy, FailOnNameCollision: &p.FailOnNameCollision}
	result, err := generator.NewService(generator.WithLogger(logger)).ComputeNames(p.Spec, cfg)
	if err != nil {
		return err
	}
	return report.Build(p.Spec, result).Encode(w, format)
}
