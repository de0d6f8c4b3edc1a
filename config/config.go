// Package config provides configuration loading and management for gafcheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete gafcheck configuration
type Config struct {
	Ontology OntologyConfig `yaml:"ontology"`
	Context  ContextConfig  `yaml:"context"`
	Engine   EngineConfig   `yaml:"engine"`
	Report   ReportConfig   `yaml:"report"`
	Rules    RulesConfig    `yaml:"rules"`
	NATS     NATSConfig     `yaml:"nats"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// OntologyConfig configures ontology graph loading
type OntologyConfig struct {
	// Path is the OBO graph JSON file (usually given on the command line)
	Path string `yaml:"path"`
	// Tolerant drops edges that reference unknown nodes instead of
	// failing the load
	Tolerant bool `yaml:"tolerant"`
	// ReplacementDepth bounds replaced_by chain resolution
	ReplacementDepth int `yaml:"replacement_depth"`
	// AncestorCacheSize is the LRU size for ancestor closures
	AncestorCacheSize int `yaml:"ancestor_cache_size"`
}

// ContextConfig configures identifier prefix resolution
type ContextConfig struct {
	// Path is an optional JSON-LD context file merged over the built-in
	// prefixes
	Path string `yaml:"path"`
}

// EngineConfig configures the validation engine
type EngineConfig struct {
	// Workers is the validation pool size
	Workers int `yaml:"workers"`
}

// ReportConfig configures report output
type ReportConfig struct {
	// SampleCap bounds the findings retained per rule in the report
	SampleCap int `yaml:"sample_cap"`
}

// RulesConfig configures the rule set
type RulesConfig struct {
	// Coupling overrides the per-evidence-code With/From policy. Keys are
	// evidence codes.
	Coupling map[string]CouplingConfig `yaml:"coupling"`
}

// CouplingConfig overrides one evidence code's With/From coupling
type CouplingConfig struct {
	// Policy is "require", "forbid" or "any"
	Policy string `yaml:"policy"`
	// Severity of a violation: "info", "warning" or "error" (default: "warning")
	Severity string `yaml:"severity"`
}

// NATSConfig configures optional finding publication
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// SubjectPrefix prefixes published subjects (default: "gafcheck")
	SubjectPrefix string `yaml:"subject_prefix"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			ReplacementDepth:  10,
			AncestorCacheSize: 4096,
		},
		Engine: EngineConfig{
			Workers: 4,
		},
		Report: ReportConfig{
			SampleCap: 50,
		},
		NATS: NATSConfig{
			SubjectPrefix: "gafcheck",
		},
	}
}

// couplingValues are the accepted rules.coupling policies
var couplingValues = map[string]struct{}{
	"require": {},
	"forbid":  {},
	"any":     {},
}

// severityValues are the accepted rules.coupling severities; empty keeps
// the default
var severityValues = map[string]struct{}{
	"":        {},
	"info":    {},
	"warning": {},
	"error":   {},
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Engine.Workers < 1 {
		return fmt.Errorf("engine.workers must be at least 1")
	}
	if c.Report.SampleCap < 0 {
		return fmt.Errorf("report.sample_cap must not be negative")
	}
	if c.Ontology.ReplacementDepth < 1 {
		return fmt.Errorf("ontology.replacement_depth must be at least 1")
	}
	if c.Ontology.AncestorCacheSize < 1 {
		return fmt.Errorf("ontology.ancestor_cache_size must be at least 1")
	}
	for code, coupling := range c.Rules.Coupling {
		if _, ok := couplingValues[coupling.Policy]; !ok {
			return fmt.Errorf("rules.coupling.%s.policy: %q is not one of require, forbid, any", code, coupling.Policy)
		}
		if _, ok := severityValues[coupling.Severity]; !ok {
			return fmt.Errorf("rules.coupling.%s.severity: %q is not one of info, warning, error", code, coupling.Severity)
		}
	}
	if c.NATS.URL != "" && c.NATS.SubjectPrefix == "" {
		return fmt.Errorf("nats.subject_prefix is required when nats.url is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Ontology
	if other.Ontology.Path != "" {
		c.Ontology.Path = other.Ontology.Path
	}
	if other.Ontology.Tolerant {
		c.Ontology.Tolerant = true
	}
	if other.Ontology.ReplacementDepth != 0 {
		c.Ontology.ReplacementDepth = other.Ontology.ReplacementDepth
	}
	if other.Ontology.AncestorCacheSize != 0 {
		c.Ontology.AncestorCacheSize = other.Ontology.AncestorCacheSize
	}

	// Context
	if other.Context.Path != "" {
		c.Context.Path = other.Context.Path
	}

	// Engine
	if other.Engine.Workers != 0 {
		c.Engine.Workers = other.Engine.Workers
	}

	// Report
	if other.Report.SampleCap != 0 {
		c.Report.SampleCap = other.Report.SampleCap
	}

	// Rules
	if len(other.Rules.Coupling) > 0 {
		if c.Rules.Coupling == nil {
			c.Rules.Coupling = make(map[string]CouplingConfig, len(other.Rules.Coupling))
		}
		for code, coupling := range other.Rules.Coupling {
			c.Rules.Coupling[code] = coupling
		}
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.SubjectPrefix != "" {
		c.NATS.SubjectPrefix = other.NATS.SubjectPrefix
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
