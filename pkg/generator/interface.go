package generator

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/generator/golang"
	"github.com/blimu-dev/typegen/pkg/generator/report"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// Generator defines the interface for output generators
type Generator interface {
	// Generate writes the output for one client from the named IR
	Generate(client config.Client, ir ir.IR) error
	// GetType returns the type identifier for this generator (e.g., "go")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	return types
}

// GenerateOptions contains options for generation
type GenerateOptions struct {
	ConfigPath   string
	SingleClient string
	Fallback     FallbackOptions
}

// FallbackOptions contains fallback options when no config file is provided
type FallbackOptions struct {
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

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
	logger   diag.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes the service's logs and diagnostics to logger.
func WithLogger(logger diag.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new generator service with default generators
func NewService(opts ...Option) *Service {
	registry := NewRegistry()
	// Register default generators
	registry.Register(golang.NewGoGenerator())
	registry.Register(report.NewReportGenerator())
	return NewServiceWithRegistry(registry, opts...)
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		logger:   diag.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate generates outputs based on the provided options
func (s *Service) Generate(opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		// Use fallback options to create a config
		if opts.Fallback.Spec == "" || opts.Fallback.Type == "" ||
			opts.Fallback.OutDir == "" || opts.Fallback.Name == "" ||
			(opts.Fallback.Type == "go" && opts.Fallback.PackageName == "") {
			return fmt.Errorf("either config path or all fallback options must be provided")
		}
		cfg = &config.Config{
			Spec:           opts.Fallback.Spec,
			NamingStrategy: opts.Fallback.NamingStrategy,
			Clients: []config.Client{
				{
					Type:        opts.Fallback.Type,
					OutDir:      opts.Fallback.OutDir,
					PackageName: opts.Fallback.PackageName,
					Name:        opts.Fallback.Name,
					Format:      opts.Fallback.Format,
					IncludeTags: opts.Fallback.IncludeTags,
					ExcludeTags: opts.Fallback.ExcludeTags,
				},
			},
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	return s.GenerateFromConfig(cfg, opts.SingleClient)
}

// GenerateFromConfig generates outputs from a configuration
func (s *Service) GenerateFromConfig(cfg *config.Config, onlyClient string) error {
	// Load and validate OpenAPI document
	doc, err := openapi.LoadDocument(cfg.Spec)
	if err != nil {
		return err
	}

	// Assign names to every type in the document
	fullIR, err := s.buildIR(doc, cfg)
	if err != nil {
		return err
	}

	// Generate for each client
	for _, client := range cfg.Clients {
		if onlyClient != "" && client.Name != onlyClient {
			continue
		}

		generator, exists := s.registry.Get(client.Type)
		if !exists {
			return fmt.Errorf("unsupported client type: %s", client.Type)
		}

		// Ensure output directory exists before pre-commands
		if err := os.MkdirAll(client.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory for client %s: %w", client.Name, err)
		}

		// Execute pre-generation commands if specified
		if err := s.executePreCommands(client); err != nil {
			return fmt.Errorf("pre-generation commands failed for client %s: %w", client.Name, err)
		}

		// Filter IR based on client configuration
		filteredIR, err := s.filterIR(fullIR, client)
		if err != nil {
			return err
		}

		s.logger.Info("generating", "client", client.Name, "type", client.Type, "outDir", client.OutDir)
		if err := generator.Generate(client, filteredIR); err != nil {
			return fmt.Errorf("generating client %s: %w", client.Name, err)
		}

		// Execute post-generation commands if specified
		if err := s.executePostGenCommands(client); err != nil {
			return fmt.Errorf("post-generation commands failed for client %s: %w", client.Name, err)
		}
	}

	return nil
}

// ComputeNames loads the document at specPath and assigns a name to every
// type in it without writing any output.
func (s *Service) ComputeNames(specPath string, cfg *config.Config) (ir.IR, error) {
	doc, err := openapi.LoadDocument(specPath)
	if err != nil {
		return ir.IR{}, err
	}
	return s.buildIR(doc, cfg)
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// executePreCommands executes the pre-generation command for a client
func (s *Service) executePreCommands(client config.Client) error {
	command := client.GetPreCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(command, client.OutDir, "pre-command")
}

// executePostGenCommands executes the post-generation command for a client
func (s *Service) executePostGenCommands(client config.Client) error {
	command := client.GetPostCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(command, client.OutDir, "post-command")
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil // Skip empty commands
	}

	// Create command with first element as executable and rest as arguments
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = workDir      // Execute in the specified directory
	cmd.Stdout = os.Stdout // Forward stdout to see command output
	cmd.Stderr = os.Stderr // Forward stderr to see errors

	cmdDescription := strings.Join(command, " ")
	s.logger.Debug("running command", "label", commandLabel, "command", cmdDescription, "dir", workDir)

	// Execute the command
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}
