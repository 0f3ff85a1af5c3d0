// Package config loads AirEngine's loop/CLI configuration: repair mode
// defaults, adapter selection, and output directory conventions.
//
// The YAML-unmarshal-with-env-expansion shape and default-filling pattern
// follow the teacher's internal/config.Load almost exactly, trimmed from
// its multi-repository/forge/Hugo shape down to the handful of knobs the
// agent loop actually reads. `.env` loading uses joho/godotenv instead of
// the teacher's hand-rolled scanner, since AirEngine has no other use for
// a bespoke dotenv parser.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/airengine/airengine/internal/agent"
	"github.com/airengine/airengine/internal/retrypolicy"
)

// AdapterConfig configures the repair adapter used by RepairMode=llm.
type AdapterConfig struct {
	Endpoint   string        `yaml:"endpoint,omitempty"`
	APIKeyEnv  string        `yaml:"api_key_env,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	MaxRetries int           `yaml:"max_retries,omitempty"`
}

// Config is AirEngine's loop/CLI configuration (spec.md §6).
type Config struct {
	OutputDir         string        `yaml:"output_dir,omitempty"`
	ArtifactRoot      string        `yaml:"artifact_root,omitempty"`
	RepairMode        string        `yaml:"repair_mode,omitempty"`
	MaxRepairAttempts int           `yaml:"max_repair_attempts,omitempty"`
	Adapter           AdapterConfig `yaml:"adapter,omitempty"`
}

// Default returns AirEngine's built-in configuration defaults.
func Default() Config {
	return Config{
		OutputDir:         "./out",
		ArtifactRoot:      ".air-artifacts",
		RepairMode:        string(agent.RepairNone),
		MaxRepairAttempts: 1,
		Adapter: AdapterConfig{
			APIKeyEnv:  "AIRENGINE_LLM_API_KEY",
			Timeout:    30 * time.Second,
			MaxRetries: retrypolicy.Default().MaxRetries,
		},
	}
}

// Load reads configPath (if it exists; a missing file is not an error and
// yields Default()), expands environment variables in its YAML body, and
// fills unset fields from Default(). It also loads a `.env` file from the
// working directory, if present, so AIRENGINE_LLM_API_KEY and friends are
// available to the LLM adapter setup without the caller needing to export them.
func Load(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config: note: .env not loaded: %v\n", err)
	}

	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", configPath, err)
	}
	expanded := os.ExpandEnv(string(data))

	var loaded Config
	if err := yaml.Unmarshal([]byte(expanded), &loaded); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", configPath, err)
	}
	applyOverrides(&cfg, loaded)
	return cfg, nil
}

func applyOverrides(base *Config, override Config) {
	if override.OutputDir != "" {
		base.OutputDir = override.OutputDir
	}
	if override.ArtifactRoot != "" {
		base.ArtifactRoot = override.ArtifactRoot
	}
	if override.RepairMode != "" {
		base.RepairMode = override.RepairMode
	}
	if override.MaxRepairAttempts != 0 {
		base.MaxRepairAttempts = override.MaxRepairAttempts
	}
	if override.Adapter.Endpoint != "" {
		base.Adapter.Endpoint = override.Adapter.Endpoint
	}
	if override.Adapter.APIKeyEnv != "" {
		base.Adapter.APIKeyEnv = override.Adapter.APIKeyEnv
	}
	if override.Adapter.Timeout != 0 {
		base.Adapter.Timeout = override.Adapter.Timeout
	}
	if override.Adapter.MaxRetries != 0 {
		base.Adapter.MaxRetries = override.Adapter.MaxRetries
	}
}

// APIKey resolves the adapter's API key from the environment variable
// named by Adapter.APIKeyEnv.
func (c Config) APIKey() string {
	if c.Adapter.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Adapter.APIKeyEnv)
}
