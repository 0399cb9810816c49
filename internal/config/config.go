// Package config loads the settings of the itemsets command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment variables overriding the
// settings.
const EnvPrefix = "ITEMSETS_"

const defaults = `
verbose: false
mine:
  algorithm: fp
  min_support: 0.1
  min_size: 1
  max_size: 0
  workers: 1
  bins: 0
  format: text
  by_size: true
  lift: false
generate:
  seed: 1
  transactions: 1000
  min_len: 1
  max_len: 5
  max_quantity: 100
`

// Config holds every setting of the itemsets command.
type Config struct {
	Verbose  bool           `koanf:"verbose"`
	Mine     MineConfig     `koanf:"mine"`
	Generate GenerateConfig `koanf:"generate"`
}

// MineConfig holds the settings of the mine, compare and stats commands.
type MineConfig struct {
	Algorithm   string  `koanf:"algorithm"`
	MinSupport  float64 `koanf:"min_support"`
	MinSize     int     `koanf:"min_size"`
	MaxSize     int     `koanf:"max_size"`
	Workers     int     `koanf:"workers"`
	Bins        int     `koanf:"bins"`
	Format      string  `koanf:"format"`
	BySize      bool    `koanf:"by_size"`
	Lift        bool    `koanf:"lift"`
	MetricsFile string  `koanf:"metrics_file"`
}

// GenerateConfig holds the settings of the generate command.
type GenerateConfig struct {
	Seed         int64  `koanf:"seed"`
	Transactions int    `koanf:"transactions"`
	MinLen       int    `koanf:"min_len"`
	MaxLen       int    `koanf:"max_len"`
	MaxQuantity  int    `koanf:"max_quantity"`
	Catalog      string `koanf:"catalog"`
}

/*
Load returns the settings, taking the defaults, then the YAML file at path
when path is not empty and then the ITEMSETS_ environment variables, where
the first underscore after the prefix separates the section from the
setting:

	ITEMSETS_MINE_MIN_SUPPORT -> mine.min_support
	ITEMSETS_VERBOSE          -> verbose
*/
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate checks every setting is within range.
func (c *Config) Validate() error {
	var errs []error
	m := c.Mine
	switch m.Algorithm {
	case "fp", "apriori":
	default:
		errs = append(errs, fmt.Errorf("mine.algorithm must be fp or apriori, got %q", m.Algorithm))
	}
	if !(m.MinSupport > 0 && m.MinSupport <= 1) {
		errs = append(errs, fmt.Errorf("mine.min_support must be within (0, 1], got %v", m.MinSupport))
	}
	if m.MinSize < 0 {
		errs = append(errs, fmt.Errorf("mine.min_size must not be negative, got %d", m.MinSize))
	}
	if m.MaxSize > 0 && m.MaxSize < m.MinSize {
		errs = append(errs, fmt.Errorf("mine.max_size %d is below mine.min_size %d", m.MaxSize, m.MinSize))
	}
	if m.Workers < 1 {
		errs = append(errs, fmt.Errorf("mine.workers must be at least 1, got %d", m.Workers))
	}
	if m.Bins < 0 {
		errs = append(errs, fmt.Errorf("mine.bins must not be negative, got %d", m.Bins))
	}
	switch m.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("mine.format must be text or json, got %q", m.Format))
	}
	g := c.Generate
	if g.Transactions < 0 {
		errs = append(errs, fmt.Errorf("generate.transactions must not be negative, got %d", g.Transactions))
	}
	if g.MinLen < 1 || g.MaxLen < g.MinLen {
		errs = append(errs, fmt.Errorf("generate.min_len and generate.max_len must satisfy 1 <= %d <= %d", g.MinLen, g.MaxLen))
	}
	if g.MaxQuantity < 1 {
		errs = append(errs, fmt.Errorf("generate.max_quantity must be at least 1, got %d", g.MaxQuantity))
	}
	return errors.Join(errs...)
}
