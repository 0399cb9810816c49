package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groceries = "a,b\na,b,c\na\nb,c\na,b,c\n"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cliParser()
	var out, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "itemsets v0.1.0\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 10, exitCode(exit(10, errors.New("boom"))))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.EqualError(t, exit(3, errors.New("boom")), "boom")
}

func TestMineJSON(t *testing.T) {
	input := writeFile(t, "groceries.csv", groceries)
	out, err := run(t, "", "mine", "-i", input, "-s", "0.4", "-f", "json")
	require.NoError(t, err)

	var doc struct {
		Total    int `json:"total"`
		Itemsets []struct {
			Items   []string `json:"items"`
			Count   int      `json:"count"`
			Support float64  `json:"support"`
		} `json:"itemsets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 5, doc.Total)
	require.Len(t, doc.Itemsets, 7)
	counts := make(map[string]int)
	for _, s := range doc.Itemsets {
		counts[strings.Join(s.Items, ",")] = s.Count
	}
	assert.Equal(t, map[string]int{
		"a": 4, "b": 4, "c": 3,
		"a,b": 3, "a,c": 2, "b,c": 3,
		"a,b,c": 2,
	}, counts)
}

func TestMineFromStdinWithApriori(t *testing.T) {
	out, err := run(t, groceries, "mine", "-s", "0.6", "-a", "apriori", "--by-size=false")
	require.NoError(t, err)
	assert.Equal(t, "Frequent itemset: {a}, Support: 0.8000\n"+
		"Frequent itemset: {b}, Support: 0.8000\n"+
		"Frequent itemset: {a, b}, Support: 0.6000\n"+
		"Frequent itemset: {b, c}, Support: 0.6000\n"+
		"Frequent itemset: {c}, Support: 0.6000\n", out)
}

func TestMineWritesOutputAndMetrics(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, "groceries.csv", groceries)
	output := filepath.Join(dir, "itemsets.txt")
	metrics := filepath.Join(dir, "itemsets.prom")
	out, err := run(t, "", "mine", "-i", input, "-s", "0.4", "-k", "1", "-o", output, "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Itemsets of size 1:")
	assert.NotContains(t, string(content), "Itemsets of size 2:")

	content, err = os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(content), `itemsets_runs_total{algorithm="fp"} 1`)
	assert.Contains(t, string(content), "itemsets_transactions 5")
	assert.Contains(t, string(content), `itemsets_frequent{size="1"} 3`)
}

func TestMineDumpTree(t *testing.T) {
	out, err := run(t, groceries, "mine", "-s", "0.6", "--dump-tree", "-f", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "└── root:5\n"))
	assert.Contains(t, out, `"total": 5`)
}

func TestMineConfigFileAndFlags(t *testing.T) {
	input := writeFile(t, "groceries.csv", groceries)
	cfg := writeFile(t, "itemsets.yaml", "mine:\n  min_support: 0.6\n  format: json\n")

	out, err := run(t, "", "--config", cfg, "mine", "-i", input)
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 5`)
	assert.NotContains(t, out, `"support": 0.4`)

	out, err = run(t, "", "--config", cfg, "mine", "-i", input, "-s", "0.4")
	require.NoError(t, err)
	assert.Contains(t, out, `"support": 0.4`)
}

func TestMineValidation(t *testing.T) {
	input := writeFile(t, "groceries.csv", groceries)
	for name, args := range map[string][]string{
		"support":   {"mine", "-i", input, "-s", "1.5"},
		"algorithm": {"mine", "-i", input, "-a", "eclat"},
		"workers":   {"mine", "-i", input, "-w", "0"},
		"sizes":     {"mine", "-i", input, "--min-size", "3", "-k", "2"},
		"format":    {"mine", "-i", input, "-f", "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, 1, exitCode(err))
		})
	}

	_, err := run(t, "", "mine", "-i", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "", "mine", "-s", "0.5")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
}

func TestCompare(t *testing.T) {
	input := writeFile(t, "groceries.csv", groceries)
	out, err := run(t, "", "compare", "-i", input, "-s", "0.4", "-w", "2")
	require.NoError(t, err)
	assert.Equal(t, "fp and apriori agree on 7 frequent itemsets\n", out)
}

func TestStats(t *testing.T) {
	input := writeFile(t, "groceries.csv", groceries)
	out, err := run(t, "", "stats", "-i", input, "--items", "a, b,c", "--base", "b")
	require.NoError(t, err)
	assert.Equal(t, "Itemset: {a, b, c}\n"+
		"Support: 0.4000\n"+
		"Confidence on b: 0.5000\n"+
		"Lift on b: 1.2500\n", out)

	_, err = run(t, "", "stats", "-i", input)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = run(t, "", "stats", "-i", input, "--items", "a,b", "--base", "c")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = run(t, "", "stats", "-i", input, "--items", "a,z")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))
}

func TestGenerate(t *testing.T) {
	args := []string{"generate", "--items", "bread,milk,eggs,butter", "-n", "20", "--seed", "7", "--max-len", "3"}
	first, err := run(t, "", args...)
	require.NoError(t, err)
	second, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, strings.Split(strings.TrimSuffix(first, "\n"), "\n"), 20)

	_, err = run(t, "", "generate", "-n", "5")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestGenerateRandomCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yml")
	output := filepath.Join(dir, "baskets.csv")
	_, err := run(t, "", "generate", "--items", "bread,milk,eggs", "--conditionals", "2", "--catalog-output", catalog, "-n", "10", "-o", output)
	require.NoError(t, err)

	fromItems, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(fromItems), "\n"), "\n"), 10)

	out, err := run(t, "", "generate", "--catalog", catalog, "-n", "10")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 10)
}

func TestSetCopiesCSV(t *testing.T) {
	input := writeFile(t, "in.csv", "milk:2,bread\neggs:0.5\n")
	output := filepath.Join(t.TempDir(), "out.csv")
	_, err := run(t, "", "set", "-i", input, "-o", output)
	require.NoError(t, err)
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "bread,milk:2\neggs:0.5\n", string(content))

	out, err := run(t, "milk:2,bread\n", "set")
	require.NoError(t, err)
	assert.Equal(t, "bread,milk:2\n", out)
}

func TestParseRedisURL(t *testing.T) {
	loc, err := parseRedisURL("redis://localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, &redisLocation{addr: "localhost:6379", prefix: defaultRedisPrefix}, loc)

	loc, err = parseRedisURL("redis://:secret@cache:6380/2/groceries")
	require.NoError(t, err)
	assert.Equal(t, &redisLocation{addr: "cache:6380", password: "secret", db: 2, prefix: "groceries"}, loc)

	loc, err = parseRedisURL("redis://cache:6380/groceries")
	require.NoError(t, err)
	assert.Equal(t, "groceries", loc.prefix)
	assert.Equal(t, 0, loc.db)

	_, err = parseRedisURL("redis:///groceries")
	assert.Error(t, err)
	_, err = parseRedisURL("http://cache:6380")
	assert.Error(t, err)
}

func TestLocationKinds(t *testing.T) {
	assert.True(t, isPostgreSQL("postgresql://user@localhost/itemsets"))
	assert.True(t, isSqlite3("baskets.db"))
	assert.True(t, isRedis("redis://localhost:6379/groceries"))
	assert.True(t, isMongoDB("mongodb://localhost/itemsets"))
	assert.False(t, isSqlite3("baskets.csv"))
	assert.Equal(t, []itemset.Item{"a", "b"}, parseItems(" a, ,b "))
}
