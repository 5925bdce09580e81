package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/naming"
)

// Config represents the complete configuration for type generation
type Config struct {
	Spec string `yaml:"spec"`
	Name string `yaml:"name"`
	// NamingStrategy selects how document strings become identifiers:
	// "defensive" (default) or "idiomatic".
	NamingStrategy string `yaml:"namingStrategy"`
	// NameOverrides maps raw document strings directly onto identifiers.
	NameOverrides map[string]string `yaml:"nameOverrides"`
	// FailOnNameCollision aborts generation when two declarations escape to
	// the same identifier. Defaults to true.
	FailOnNameCollision *bool    `yaml:"failOnNameCollision"`
	Clients             []Client `yaml:"clients"`
}

// ShouldFailOnNameCollision reports whether name collisions are fatal.
func (c *Config) ShouldFailOnNameCollision() bool {
	return c.FailOnNameCollision == nil || *c.FailOnNameCollision
}

// Client represents configuration for a single generated output
type Client struct {
	Type        string   `yaml:"type"`
	OutDir      string   `yaml:"outDir"`
	PackageName string   `yaml:"packageName"`
	Name        string   `yaml:"name"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// Format selects the encoding of the report output: "json" (default) or "yaml".
	Format string `yaml:"format"`
	// PreCommand is an optional command to run before generation starts.
	// Uses Docker Compose array format: ["goimports", "-w", "."]
	// The command will be executed in the output directory.
	PreCommand []string `yaml:"preCommand"`
	// PostCommand is an optional command to run after generation completes.
	// Uses Docker Compose array format: ["goimports", "-w", "."]
	// The command will be executed in the output directory.
	PostCommand []string `yaml:"postCommand"`
	// ExcludeFiles is a list of file paths (relative to outDir) that should not be generated
	// Example: ["names.json"]
	ExcludeFiles []string `yaml:"exclude"`
}

// GetPreCommand returns the pre-generation command to execute.
func (c *Client) GetPreCommand() []string {
	return c.PreCommand
}

// GetPostCommand returns the post-generation command to execute.
func (c *Client) GetPostCommand() []string {
	return c.PostCommand
}

// ShouldExcludeFile checks if a file path should be excluded based on the ExcludeFiles list.
// targetPath should be an absolute path, and the comparison is done relative to OutDir.
func (c *Client) ShouldExcludeFile(targetPath string) bool {
	if len(c.ExcludeFiles) == 0 {
		return false
	}

	// Get relative path from OutDir to targetPath
	relPath, err := filepath.Rel(c.OutDir, targetPath)
	if err != nil {
		// If we can't get a relative path, the file is not under OutDir, so don't exclude
		return false
	}

	// Normalize the path (use forward slashes for consistency, handle . and ..)
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		relPath = ""
	}

	// Check if the relative path matches any exclude pattern
	for _, excludePattern := range c.ExcludeFiles {
		// Normalize exclude pattern
		normalizedExclude := filepath.ToSlash(excludePattern)

		// Exact match
		if relPath == normalizedExclude {
			return true
		}

		// Check if the file is in a directory that matches the exclude pattern
		// For example, if exclude is "src/", then "src/client.ts" should match
		if normalizedExclude != "" && strings.HasPrefix(relPath, normalizedExclude+"/") {
			return true
		}
	}

	return false
}

// Load loads configuration from a YAML file. Relative spec and output
// paths are resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Spec == "" {
		return nil, errors.New("config.spec is required")
	}
	if _, err := naming.ParseStrategy(cfg.NamingStrategy); err != nil {
		return nil, fmt.Errorf("config.namingStrategy: %w", err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	for i := range cfg.Clients {
		c := &cfg.Clients[i]
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("clients[%d] %w", i, err)
		}
		c.OutDir = resolve(base, c.OutDir)
	}
	// Do not absolutize when spec is an HTTP(S) URL
	if u, err := url.Parse(cfg.Spec); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		cfg.Spec = resolve(base, cfg.Spec)
	}
	return &cfg, nil
}

func (c *Client) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"type", c.Type},
		{"outDir", c.OutDir},
		{"name", c.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	// Only Go output declares a package.
	if c.Type == "go" && c.PackageName == "" {
		missing = append(missing, "packageName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields (%s)", strings.Join(missing, ", "))
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
