// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// Environment represents the deployment environment a variable set is
// resolved for.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Color modes for OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the configuration for the vardef CLI.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Root is the directory relative layer paths resolve against and
	// the value of ${VARDEF_ROOT}. Defaults to the directory holding
	// the config file.
	Root string `yaml:"root"`

	// Layers are variable collection files merged in order, each
	// overriding the ones before it.
	Layers []string `yaml:"layers"`

	// Variables are inline definitions merged after all layers.
	Variables []vars.Var `yaml:"variables"`

	// Strict rejects layers that redefine a locked variable.
	Strict bool `yaml:"strict"`

	// Output configures how commands print documents.
	Output OutputConfig `yaml:"output"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per
// environment. Layers are appended, Variables merged on top of the
// base variables, and Output fields replaced when set.
type ConfigOverrides struct {
	Layers    []string      `yaml:"layers,omitempty"`
	Variables []vars.Var    `yaml:"variables,omitempty"`
	Strict    *bool         `yaml:"strict,omitempty"`
	Output    *OutputConfig `yaml:"output,omitempty"`
}

// OutputConfig configures printed output.
type OutputConfig struct {
	// Format is the document format used when neither --to nor an
	// output path decides it.
	// Default: json
	Format string `yaml:"format"`

	// Color is auto, always or never. Auto highlights only when
	// stdout is a terminal.
	// Default: auto
	Color string `yaml:"color"`

	// Compact disables JSON indentation.
	Compact bool `yaml:"compact"`
}

// Default returns the default configuration, used as the base before
// the config file is applied.
func Default() *Config {
	return &Config{
		Environment: Development,
		Output: OutputConfig{
			Format: codec.JSON.String(),
			Color:  ColorAuto,
		},
	}
}

// Load loads configuration from the VARDEF_CONFIG environment variable.
// There is no discovery: if VARDEF_CONFIG is unset, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv("VARDEF_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("VARDEF_CONFIG environment variable not set; " +
			"set it to the path of your vardef.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Environment
// variables never override values from the file; they are only
// consulted by ${VAR} expansion in Root and Layers.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if cfg.Root == "" {
		absolute, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		cfg.Root = absolute
	}
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: locked variables stay locked.
		if overrides == nil {
			strict := true
			overrides = &ConfigOverrides{Strict: &strict}
		}
	}

	if overrides == nil {
		return
	}

	c.Layers = append(c.Layers, overrides.Layers...)

	if len(overrides.Variables) > 0 {
		merged := vars.Define(c.Variables...).Merge(vars.Define(overrides.Variables...))
		c.Variables = merged.Vars()
	}

	if overrides.Strict != nil {
		c.Strict = *overrides.Strict
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
		// Compact is a bool, so it always applies from overrides.
		c.Output.Compact = overrides.Output.Compact
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in Root and
// Layers, then makes relative layer paths absolute under Root.
func (c *Config) expandVariables() {
	values := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Root = expandVars(c.Root, values)
	values["VARDEF_ROOT"] = c.Root

	for i, layer := range c.Layers {
		layer = expandVars(layer, values)
		if layer != "" && !filepath.IsAbs(layer) {
			layer = filepath.Join(c.Root, layer)
		}
		c.Layers[i] = layer
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, values map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided values first, then the environment.
		if value, ok := values[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// InlineVariables returns the inline variables as a collection.
func (c *Config) InlineVariables() vars.Collection {
	return vars.Define(c.Variables...)
}

// OutputFormat parses Output.Format, defaulting to JSON when unset.
func (c *Config) OutputFormat() (codec.Format, error) {
	if c.Output.Format == "" {
		return codec.JSON, nil
	}
	return codec.ParseFormat(c.Output.Format)
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	for i, layer := range c.Layers {
		if layer == "" {
			errs = append(errs, fmt.Errorf("layers[%d] is empty", i))
			continue
		}
		if _, _, err := varfile.DetectPath(layer); err != nil {
			errs = append(errs, fmt.Errorf("layers[%d]: %w", i, err))
		}
	}

	for i, v := range c.Variables {
		if !v.Valid() {
			errs = append(errs, fmt.Errorf("variables[%d] holds no definition", i))
		}
	}

	if _, err := c.OutputFormat(); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}

	colorModes := []string{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}

	return errors.Join(errs...)
}
