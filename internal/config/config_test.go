package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itemsets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "fp", cfg.Mine.Algorithm)
	assert.Equal(t, 0.1, cfg.Mine.MinSupport)
	assert.Equal(t, 1, cfg.Mine.MinSize)
	assert.Equal(t, 0, cfg.Mine.MaxSize)
	assert.Equal(t, 1, cfg.Mine.Workers)
	assert.Equal(t, "text", cfg.Mine.Format)
	assert.True(t, cfg.Mine.BySize)
	assert.Equal(t, int64(1), cfg.Generate.Seed)
	assert.Equal(t, 1000, cfg.Generate.Transactions)
	assert.Equal(t, 100, cfg.Generate.MaxQuantity)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
verbose: true
mine:
  algorithm: apriori
  min_support: 0.05
  workers: 4
generate:
  catalog: catalog.yml
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "apriori", cfg.Mine.Algorithm)
	assert.Equal(t, 0.05, cfg.Mine.MinSupport)
	assert.Equal(t, 4, cfg.Mine.Workers)
	assert.Equal(t, "text", cfg.Mine.Format)
	assert.Equal(t, "catalog.yml", cfg.Generate.Catalog)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "mine:\n  min_support: 0.05\n  max_size: 3\n")
	t.Setenv("ITEMSETS_MINE_MIN_SUPPORT", "0.25")
	t.Setenv("ITEMSETS_MINE_METRICS_FILE", "/tmp/itemsets.prom")
	t.Setenv("ITEMSETS_VERBOSE", "true")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Mine.MinSupport)
	assert.Equal(t, 3, cfg.Mine.MaxSize)
	assert.Equal(t, "/tmp/itemsets.prom", cfg.Mine.MetricsFile)
	assert.True(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "mine: [\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "mine:\n  min_support: 1.5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mine.min_support")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "mine.min_support", envKey("ITEMSETS_MINE_MIN_SUPPORT"))
	assert.Equal(t, "generate.max_quantity", envKey("ITEMSETS_GENERATE_MAX_QUANTITY"))
	assert.Equal(t, "verbose", envKey("ITEMSETS_VERBOSE"))
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cases := map[string]func(*Config){
		"algorithm": func(c *Config) { c.Mine.Algorithm = "eclat" },
		"support":   func(c *Config) { c.Mine.MinSupport = 0 },
		"sizes":     func(c *Config) { c.Mine.MinSize, c.Mine.MaxSize = 3, 2 },
		"workers":   func(c *Config) { c.Mine.Workers = 0 },
		"bins":      func(c *Config) { c.Mine.Bins = -1 },
		"format":    func(c *Config) { c.Mine.Format = "xml" },
		"lengths":   func(c *Config) { c.Generate.MinLen, c.Generate.MaxLen = 4, 2 },
		"quantity":  func(c *Config) { c.Generate.MaxQuantity = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := *cfg
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, cfg.Validate())
}
