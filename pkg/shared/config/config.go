package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/csentry/csentry/internal/engine"
)

// Config is the application configuration, loaded from an optional YAML
// file. Values here are defaults; command-line flags override them.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Scanner Scanner `yaml:"scanner"`
	Report  Report  `yaml:"report"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Scanner struct {
	Threshold  int      `yaml:"threshold"`
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
	Threads    int      `yaml:"threads"`
}

type Report struct {
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in defaults used when no config file is
// present.
func DefaultConfig() *Config {
	return &Config{
		Scanner: Scanner{
			Threshold:  engine.DefaultStackBufferThreshold,
			Extensions: []string{".c", ".h"},
			Threads:    1,
		},
		Report: Report{
			Format: "text",
		},
	}
}

// ValidateConfigPath checks that the given path points at a readable file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the config file at configPath over the built-in
// defaults. Fields missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}
