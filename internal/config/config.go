package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Helper HelperConfig `yaml:"helper"`
}

type ServerConfig struct {
	URL     string        `yaml:"url"`
	Page    string        `yaml:"page"`
	Timeout time.Duration `yaml:"timeout"`
}

type HelperConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	ClockInterval time.Duration `yaml:"clock_interval"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://127.0.0.1:8000",
			Page:    "/index.html",
			Timeout: 10 * time.Second,
		},
		Helper: HelperConfig{
			PollInterval:  500 * time.Millisecond,
			ClockInterval: 1000 * time.Millisecond,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Helper.PollInterval <= 0 {
		return fmt.Errorf("helper.poll_interval must be positive, got %v", c.Helper.PollInterval)
	}
	if c.Helper.ClockInterval <= 0 {
		return fmt.Errorf("helper.clock_interval must be positive, got %v", c.Helper.ClockInterval)
	}
	return nil
}
