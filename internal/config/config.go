// Package config loads pyvet's tiered YAML configuration: built-in defaults,
// then the machine config, then the project config, each overriding the last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the full pyvet configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Store     StoreConfig     `yaml:"store"`
	Gate      GateConfig      `yaml:"gate"`
	Serve     ServeConfig     `yaml:"serve"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is the default output format; empty means auto-detect
	// (pretty on a TTY, json otherwise).
	Format string `yaml:"format"`
	// Path is where the analyze command writes the report.
	Path string `yaml:"path"`
}

// StoreConfig locates the run artifact store and history database.
type StoreConfig struct {
	Dir       string `yaml:"dir"`
	HistoryDB string `yaml:"history_db"`
}

// GateConfig controls policy evaluation.
type GateConfig struct {
	// PolicyDir holds custom .rego policies; empty means built-in policy.
	PolicyDir string `yaml:"policy_dir"`
}

// ServeConfig controls the HTTP API server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// TelemetryConfig controls OTel export.
type TelemetryConfig struct {
	Enabled        bool              `yaml:"enabled"`
	ServiceName    string            `yaml:"service_name"`
	ServiceVersion string            `yaml:"service_version"`
	Endpoint       string            `yaml:"endpoint"`
	Protocol       string            `yaml:"protocol"` // "grpc" or "http"
	Insecure       bool              `yaml:"insecure"`
	Headers        map[string]string `yaml:"headers"`
	SampleRate     float64           `yaml:"sample_rate"`
}

var knownFormats = map[string]bool{
	"": true, "json": true, "sarif": true, "markdown": true, "pretty": true,
}

// Validate checks that the configuration is ready to use.
func (c *Config) Validate() error {
	if !knownFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be one of json, sarif, markdown, pretty; got: %s", c.Output.Format)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	switch c.Telemetry.Protocol {
	case "", "grpc", "http":
	default:
		return fmt.Errorf("telemetry.protocol must be 'grpc' or 'http', got: %s", c.Telemetry.Protocol)
	}
	return nil
}

// MergeConfigs merges configs in order of increasing precedence. Non-zero
// fields from later configs override earlier ones.
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Output.Format != "" {
			result.Output.Format = cfg.Output.Format
		}
		if cfg.Output.Path != "" {
			result.Output.Path = cfg.Output.Path
		}
		if cfg.Store.Dir != "" {
			result.Store.Dir = cfg.Store.Dir
		}
		if cfg.Store.HistoryDB != "" {
			result.Store.HistoryDB = cfg.Store.HistoryDB
		}
		if cfg.Gate.PolicyDir != "" {
			result.Gate.PolicyDir = cfg.Gate.PolicyDir
		}
		if cfg.Serve.Addr != "" {
			result.Serve.Addr = cfg.Serve.Addr
		}
		if cfg.Telemetry.Enabled {
			result.Telemetry.Enabled = true
		}
		if cfg.Telemetry.ServiceName != "" {
			result.Telemetry.ServiceName = cfg.Telemetry.ServiceName
		}
		if cfg.Telemetry.ServiceVersion != "" {
			result.Telemetry.ServiceVersion = cfg.Telemetry.ServiceVersion
		}
		if cfg.Telemetry.Endpoint != "" {
			result.Telemetry.Endpoint = cfg.Telemetry.Endpoint
		}
		if cfg.Telemetry.Protocol != "" {
			result.Telemetry.Protocol = cfg.Telemetry.Protocol
		}
		if cfg.Telemetry.Insecure {
			result.Telemetry.Insecure = true
		}
		if len(cfg.Telemetry.Headers) > 0 {
			result.Telemetry.Headers = cfg.Telemetry.Headers
		}
		if cfg.Telemetry.SampleRate != 0 {
			result.Telemetry.SampleRate = cfg.Telemetry.SampleRate
		}
	}

	return result
}

// LoadFromFile reads a YAML config file. Returns nil, nil if the file does
// not exist.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return &cfg, nil
}

// MachinePath is the per-user config location.
func MachinePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pyvet", "pyvet.yaml")
}

// ProjectPath is the per-project config location, relative to the working
// directory.
func ProjectPath() string {
	return filepath.Join(".pyvet", "pyvet.yaml")
}

// LoadTiered loads system defaults, then machine config, then project
// config, and merges them in order of increasing precedence.
func LoadTiered(machinePath, projectPath string) (*Config, error) {
	system := SystemDefaults()

	machine, err := LoadFromFile(machinePath)
	if err != nil {
		return nil, fmt.Errorf("loading machine config: %w", err)
	}

	project, err := LoadFromFile(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return MergeConfigs(system, machine, project), nil
}
