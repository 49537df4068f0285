package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	Poll struct {
		TimeoutSeconds  int `yaml:"timeout_seconds"`
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"poll"`
	Output struct {
		Dir            string `yaml:"dir"`
		RetentionHours int    `yaml:"retention_hours"`
	} `yaml:"output"`
}

// LoadConfig reads the optional yaml file at path, applies environment
// overrides on top, then fills in defaults. A missing file yields pure
// defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		dec := yaml.NewDecoder(f)
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(&cfg)

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://127.0.0.1:8188"
	}
	if cfg.Poll.TimeoutSeconds <= 0 {
		cfg.Poll.TimeoutSeconds = 300
	}
	if cfg.Poll.IntervalSeconds <= 0 {
		cfg.Poll.IntervalSeconds = 5
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COMFY_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("COMFY_POLL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Poll.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("COMFY_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Poll.IntervalSeconds = n
		}
	}
	if v := os.Getenv("COMFY_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("COMFY_OUTPUT_RETENTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Output.RetentionHours = n
		}
	}
}

func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Poll.TimeoutSeconds) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.Output.RetentionHours) * time.Hour
}
