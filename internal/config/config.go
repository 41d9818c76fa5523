// Package config holds all textforge configuration: a YAML file merged over
// defaults, with environment overrides applied last. The credential lives
// here and is injected into the remote client's config; nothing reads it
// from ambient global state after load.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all textforge configuration.
type Config struct {
	// Output settings for the generated text file.
	Output OutputConfig `yaml:"output"`

	// Generation settings shared by remote and local generators.
	Generation GenerationConfig `yaml:"generation"`

	// Remote generative service configuration.
	Remote RemoteConfig `yaml:"remote"`

	// Logbook settings for the generation event log.
	Logbook LogbookConfig `yaml:"logbook"`
}

// OutputConfig configures the target file.
type OutputConfig struct {
	File string `yaml:"file"`
	Mode string `yaml:"mode"` // append or replace
}

// GenerationConfig configures text generation.
type GenerationConfig struct {
	Length int `yaml:"length"` // target character count
}

// RemoteConfig configures the remote text service.
type RemoteConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
}

// LogbookConfig configures the generation event logbook.
type LogbookConfig struct {
	Path        string `yaml:"path"`
	Encoding    string `yaml:"encoding"`
	EnsureDir   bool   `yaml:"ensure_dir"`
	DedupByHash bool   `yaml:"dedup_by_hash"`
	TimeMode    string `yaml:"time_mode"` // local or utc
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			File: "data/generated_text.txt",
			Mode: "replace",
		},
		Generation: GenerationConfig{
			Length: 256,
		},
		Remote: RemoteConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.9,
			Timeout:     "60s",
		},
		Logbook: LogbookConfig{
			Path:      "data/logbook.jsonl",
			Encoding:  "utf-8",
			EnsureDir: true,
			TimeMode:  "local",
		},
	}
}

// Load reads the configuration file at path over the defaults and applies
// environment overrides. An empty path skips the file and uses defaults
// plus environment only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables over the loaded values.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Remote.APIKey = key
	}
	if model := os.Getenv("TEXTFORGE_MODEL"); model != "" {
		c.Remote.Model = model
	}
}

// TimeoutDuration parses the remote timeout, falling back to 60s.
func (r RemoteConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}
