// Package config provides Config loading for cigen.
// Config is read from cigen.yaml in the scan root. A missing file returns
// defaults without error, and the defaults reproduce the generator's fixed
// behaviour. CLI flags override config file values by mutating the returned
// struct after loading.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duyet/i/internal/render"
	"github.com/duyet/i/internal/scan"
)

// FileName is the config file looked up in the scan root.
const FileName = "cigen.yaml"

// Default values for Config fields.
const (
	DefaultOutput     = render.DefaultOutputPath
	DefaultDescriptor = scan.DefaultDescriptor
	DefaultBranch     = render.DefaultBranch
)

// Config holds all configuration for a generator run.
type Config struct {
	Output     string   `yaml:"output"`
	Descriptor string   `yaml:"descriptor"`
	Branches   []string `yaml:"branches"`
	Exclude    []string `yaml:"exclude"`
	Strict     bool     `yaml:"strict"`
}

// Default returns a Config populated with the default values.
func Default() Config {
	return Config{
		Output:     DefaultOutput,
		Descriptor: DefaultDescriptor,
		Branches:   []string{DefaultBranch},
	}
}

// partialConfig is used during YAML parsing to distinguish between a field
// being absent (nil pointer) and a field being explicitly set to its zero value.
type partialConfig struct {
	Output     *string   `yaml:"output"`
	Descriptor *string   `yaml:"descriptor"`
	Branches   *[]string `yaml:"branches"`
	Exclude    *[]string `yaml:"exclude"`
	Strict     *bool     `yaml:"strict"`
}

// LoadConfig reads the config file at path and returns a Config.
// If the file does not exist, defaults are returned without error.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var partial partialConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&partial); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if partial.Output != nil {
		cfg.Output = *partial.Output
	}
	if partial.Descriptor != nil {
		cfg.Descriptor = *partial.Descriptor
	}
	if partial.Branches != nil {
		cfg.Branches = *partial.Branches
	}
	if partial.Exclude != nil {
		cfg.Exclude = *partial.Exclude
	}
	if partial.Strict != nil {
		cfg.Strict = *partial.Strict
	}

	return &cfg, nil
}

// Validate reports the first problem that would make a run meaningless.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output must not be empty")
	}
	d := strings.TrimSpace(c.Descriptor)
	if d == "" {
		return errors.New("descriptor must not be empty")
	}
	if strings.ContainsAny(d, `/\`) {
		return fmt.Errorf("descriptor %q must be a file name, not a path", d)
	}
	if len(c.Branches) == 0 {
		return errors.New("at least one branch is required")
	}
	for _, b := range c.Branches {
		if strings.TrimSpace(b) == "" {
			return errors.New("branch names must not be empty")
		}
	}
	return nil
}
