// Package config loads the goinspect command configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	PageLength  int      `yaml:"page_length"`
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	StripNull   bool     `yaml:"strip_null"`
	Lang        string   `yaml:"lang"`
	Probes      []string `yaml:"probes"`
	ValueWidth  int      `yaml:"value_width"`
}

// KnownProbes lists the probe names accepted in the probes list.
var KnownProbes = []string{"header"}

// Default returns the configuration used when no file is given. A zero page
// length means "fit the terminal".
func Default() Config {
	return Config{
		Prompt:     "goinspect",
		StripNull:  true,
		Lang:       "en",
		ValueWidth: 70,
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(b []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks value ranges and probe names.
func (c Config) Validate() error {
	var errs []error
	if c.PageLength < 0 {
		errs = append(errs, fmt.Errorf("page_length must not be negative, got %d", c.PageLength))
	}
	if c.ValueWidth < 0 {
		errs = append(errs, fmt.Errorf("value_width must not be negative, got %d", c.ValueWidth))
	}
	switch c.Lang {
	case "", "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("lang %q is not supported (en, ja)", c.Lang))
	}
next:
	for _, p := range c.Probes {
		for _, k := range KnownProbes {
			if p == k {
				continue next
			}
		}
		errs = append(errs, fmt.Errorf("unknown probe %q", p))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
