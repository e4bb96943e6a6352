package linter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the project lint configuration file
type Config struct {
	Version string `yaml:"version"`
	// RuleSet is the starting point: none, default or all.
	RuleSet RuleSet `yaml:"ruleset"`
	// Rules is a rule bundle applied after the rule set and policies.
	Rules      string          `yaml:"rules,omitempty"`
	Policies   []ProjectPolicy `yaml:"policies,omitempty"`
	Ignore     []string        `yaml:"ignore,omitempty"`
	Extensions []string        `yaml:"extensions,omitempty"`
}

// ConfigFileNames are searched, in order, by LoadConfigFromDir
var ConfigFileNames = []string{".vlint.yaml", ".vlint.yml", "vlint.yaml", "vlint.yml"}

// DefaultExtensions are the file extensions linted when none are configured
var DefaultExtensions = []string{".v", ".sv", ".vh", ".svh"}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    "v1",
		RuleSet:    RuleSetDefault,
		Ignore:     []string{},
		Extensions: append([]string(nil), DefaultExtensions...),
	}
}

// LoadConfig loads configuration from a file. Missing fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(config.Extensions) == 0 {
		config.Extensions = append([]string(nil), DefaultExtensions...)
	}

	return config, nil
}

// LoadConfigFromDir searches for config file in directory
func LoadConfigFromDir(dir string) (*Config, string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadConfig(path)
			return config, path, err
		}
	}

	// Return default if no config found
	return DefaultConfig(), "", nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the rule set, the rule bundle and every policy against
// registry.
func (c *Config) Validate(registry *Registry) error {
	var errs []error
	if c.RuleSet != "" {
		if _, err := ParseRuleSet(string(c.RuleSet)); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := ParseRuleBundle(c.Rules, registry); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Policies {
		if err := p.IsValid(registry); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ConfigurationFor builds the rule configuration for one file: the rule
// set, then each matching policy in declared order, then the rule bundle.
// extra is applied last, so command line bundles win over the file.
func (c *Config) ConfigurationFor(registry *Registry, path string, extra ...RuleBundle) (*Configuration, error) {
	cfg := NewConfiguration(registry)
	set := c.RuleSet
	if set == "" {
		set = RuleSetDefault
	}
	cfg.UseRuleSet(set)

	for _, p := range c.Policies {
		cfg.UseProjectPolicy(p, filepath.ToSlash(path))
	}

	bundle, err := ParseRuleBundle(c.Rules, registry)
	if err != nil {
		return nil, err
	}
	cfg.UseRuleBundle(bundle)
	for _, b := range extra {
		cfg.UseRuleBundle(b)
	}
	return cfg, nil
}

// IsIgnored reports whether path matches an ignore pattern: a glob matched
// against the base name, or a path fragment.
func (c *Config) IsIgnored(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range c.Ignore {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if strings.Contains(slashed, pattern) {
			return true
		}
	}
	return false
}

// HasLintableExtension reports whether path ends in a configured extension
func (c *Config) HasLintableExtension(path string) bool {
	ext := filepath.Ext(path)
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
