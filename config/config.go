// Package config loads the service configuration from config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Debug        bool          `yaml:"debug"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"http"`
	Model struct {
		Path  string `yaml:"path"`
		Watch bool   `yaml:"watch"`
	} `yaml:"model"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
}

// Default returns the configuration used when no config file is present:
// 127.0.0.1:5000, debug on, model.json in the working directory.
func Default() *Config {
	config := &Config{}
	config.Http.Host = "127.0.0.1"
	config.Http.Port = 5000
	config.Http.Debug = true
	config.Http.MaxBodyBytes = 1 << 20
	config.Http.ReadTimeout = 30 * time.Second
	config.Http.WriteTimeout = 30 * time.Second
	config.Model.Path = "model.json"
	config.Log.Level = "debug"
	config.Log.MaxSizeMB = 100
	config.Log.MaxBackups = 3
	config.Log.MaxAgeDays = 28
	return config
}

// Load decodes path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	var err error
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("http.port out of range: %d", c.Http.Port))
	}
	if c.Http.MaxBodyBytes <= 0 {
		err = multierr.Append(err, errors.New("http.max_body_bytes must be positive"))
	}
	if c.Model.Path == "" {
		err = multierr.Append(err, errors.New("model.path is required"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	return err
}
