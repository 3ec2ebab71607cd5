// Package config provides unified configuration loading for the schelling
// tools. It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"schelling/internal/sims/schelling"
	"schelling/internal/textstats"
)

// Config contains all configuration settings.
type Config struct {
	// Simulation holds the relocation rules.
	Simulation SimulationConfig `yaml:"simulation"`

	// Generate controls random city generation.
	Generate GenerateConfig `yaml:"generate"`

	// Text holds the word filters for tweet analysis.
	Text textstats.Filter `yaml:"text"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `yaml:"logging"`
}

// SimulationConfig mirrors schelling.Params with file-friendly names.
type SimulationConfig struct {
	R        int     `yaml:"r"`
	SimLB    float64 `yaml:"sim_lb"`
	SimUB    float64 `yaml:"sim_ub"`
	Patience int     `yaml:"patience"`
	MaxSteps int     `yaml:"max_steps"`
}

// Params converts the section to simulation parameters.
func (s SimulationConfig) Params() schelling.Params {
	return schelling.Params{
		Radius:   s.R,
		Range:    schelling.Range{Lower: s.SimLB, Upper: s.SimUB},
		Patience: s.Patience,
		MaxSteps: s.MaxSteps,
	}
}

// GenerateConfig controls random city generation.
type GenerateConfig struct {
	Size        int     `yaml:"size"`
	Seed        int64   `yaml:"seed"`
	VacancyRate float64 `yaml:"vacancy_rate"`
	ShareA      float64 `yaml:"share_a"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" additionally logs every relocation.
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	def := schelling.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			R:        def.Params.Radius,
			SimLB:    def.Params.Range.Lower,
			SimUB:    def.Params.Range.Upper,
			Patience: def.Params.Patience,
			MaxSteps: def.Params.MaxSteps,
		},
		Generate: GenerateConfig{
			Size:        def.Size,
			Seed:        def.Seed,
			VacancyRate: def.VacancyRate,
			ShareA:      def.ShareA,
		},
		Text: textstats.DefaultFilter(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path and environment variables.
// Order: defaults -> path -> environment variables.
// An empty path skips the file; a named file that does not exist is an
// error matching fs.ErrNotExist.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Simulation.Params().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if c.Generate.Size <= 0 {
		return fmt.Errorf("generate.size must be positive, got %d", c.Generate.Size)
	}
	if c.Generate.VacancyRate < 0 || c.Generate.VacancyRate > 1 {
		return fmt.Errorf("generate.vacancy_rate must be between 0 and 1, got %f", c.Generate.VacancyRate)
	}
	if c.Generate.ShareA < 0 || c.Generate.ShareA > 1 {
		return fmt.Errorf("generate.share_a must be between 0 and 1, got %f", c.Generate.ShareA)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}

// WorldConfig combines the generation and simulation sections.
func (c *Config) WorldConfig() schelling.Config {
	return schelling.Config{
		Size:        c.Generate.Size,
		Seed:        c.Generate.Seed,
		VacancyRate: c.Generate.VacancyRate,
		ShareA:      c.Generate.ShareA,
		Params:      c.Simulation.Params(),
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SCHELLING_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("SCHELLING_R"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.R = n
		}
	}

	if v := os.Getenv("SCHELLING_PATIENCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Patience = n
		}
	}

	if v := os.Getenv("SCHELLING_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.MaxSteps = n
		}
	}
}
