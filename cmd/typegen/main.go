package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	cli "github.com/blimu-dev/typegen/internal/cli"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "typegen",
		Short:         "Assign type names to OpenAPI documents and generate Go types",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newGenerateCmd(&verbose))
	root.AddCommand(newNamesCmd(&verbose))
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd(verbose *bool) *cobra.Command {
	var configPath string
	var singleClient string
	var fallback cli.FallbackParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate types for every configured client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath:   configPath,
				SingleClient: singleClient,
				Fallback:     fallback,
			}, cli.NewLogger(os.Stderr, *verbose))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to typegen.yaml config")
	cmd.Flags().StringVar(&singleClient, "client", "", "Generate only the named client from config")
	// Fallback single-client flags
	cmd.Flags().StringVar(&fallback.Spec, "input", "", "OpenAPI spec file (yaml/json) or URL")
	cmd.Flags().StringVar(&fallback.Type, "type", "", "Client type (go or report)")
	cmd.Flags().StringVar(&fallback.OutDir, "out", "", "Output directory")
	cmd.Flags().StringVar(&fallback.PackageName, "package-name", "", "Package name")
	cmd.Flags().StringVar(&fallback.Name, "client-name", "", "Client name")
	cmd.Flags().StringVar(&fallback.NamingStrategy, "naming-strategy", "", "Naming strategy (defensive or idiomatic)")
	cmd.Flags().StringVar(&fallback.Format, "format", "", "Report format (json or yaml)")
	cmd.Flags().StringArrayVar(&fallback.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&fallback.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")

	return cmd
}

func newNamesCmd(verbose *bool) *cobra.Command {
	var params cli.RunNamesParams
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Print the type names assigned to an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunNames(params, cmd.OutOrStdout(), cli.NewLogger(os.Stderr, *verbose))
		},
	}
	cmd.Flags().StringVar(&params.Spec, "input", "", "OpenAPI spec file (yaml/json) or URL")
	cmd.Flags().StringVar(&params.NamingStrategy, "naming-strategy", "", "Naming strategy (defensive or idiomatic)")
	cmd.Flags().StringVar(&params.Format, "format", "json", "Output format (json or yaml)")
	cmd.Flags().BoolVar(&params.FailOnNameCollision, "fail-on-collision", true, "Exit with an error when two types get the same name")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
