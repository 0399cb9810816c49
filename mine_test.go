package itemsets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	itemsets "github.com/JosephHardy91/itemSets"
	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type items = []itemset.Item

func basketTransactions() []itemset.Transaction {
	return itemset.Transactions(
		items{"a", "b"},
		items{"a", "b", "c"},
		items{"a"},
		items{"b", "c"},
		items{"a", "b", "c"},
	)
}

func TestMineFPAndAprioriAgree(t *testing.T) {
	txs := basketTransactions()
	fp, err := itemsets.MineFP(txs, 2, 0)
	require.NoError(t, err)
	ap, err := itemsets.MineApriori(txs, 0.4, 1)
	require.NoError(t, err)
	assert.Empty(t, itemsets.Compare(fp, ap, 1e-9))
	assert.Equal(t, 7, fp.Len())
}

func TestMineFPErrors(t *testing.T) {
	_, err := itemsets.MineFP(nil, 1, 0)
	assert.ErrorIs(t, err, itemset.ErrEmptyDataset)
	_, err = itemsets.MineFP(basketTransactions(), 0, 0)
	assert.ErrorIs(t, err, itemset.ErrInvalidSupport)
}

func TestMine(t *testing.T) {
	ctx := context.Background()
	d := dataset.FromTransactions(basketTransactions())
	for _, algorithm := range []itemsets.Algorithm{itemsets.FPGrowth, itemsets.Apriori} {
		t.Run(string(algorithm), func(t *testing.T) {
			result, err := itemsets.Mine(ctx, d, itemsets.Options{
				Algorithm:  algorithm,
				MinSupport: 0.4,
				MinSize:    2,
				MaxSize:    2,
				Workers:    2,
			})
			require.NoError(t, err)
			assert.Equal(t, algorithm, result.Algorithm)
			assert.Equal(t, 2, result.MinCount)
			assert.Len(t, result.Transactions, 5)
			assert.Equal(t, 3, result.Table.Len())
			for _, e := range result.Table.Entries() {
				assert.Equal(t, 2, e.Itemset.Len())
			}
		})
	}
}

func TestMineDefaultsToFPGrowth(t *testing.T) {
	result, err := itemsets.MineTransactions(basketTransactions(), itemsets.Options{MinSupport: 0.4})
	require.NoError(t, err)
	assert.Equal(t, itemsets.FPGrowth, result.Algorithm)
	assert.Equal(t, 7, result.Table.Len())
}

func TestMineWithBins(t *testing.T) {
	d := dataset.New([]dataset.Basket{
		{ID: "1", Quantities: map[itemset.Item]float64{"milk": 1, "bread": 1}},
		{ID: "2", Quantities: map[itemset.Item]float64{"milk": 1, "bread": 1}},
		{ID: "3", Quantities: map[itemset.Item]float64{"milk": 9}},
	})
	result, err := itemsets.Mine(context.Background(), d, itemsets.Options{MinSupport: 0.5, Bins: 2})
	require.NoError(t, err)
	assert.True(t, result.Table.Contains(itemset.Of("bread#1", "milk#0")))
	assert.False(t, result.Table.Contains(itemset.Of("milk#2")))
}

func TestMineErrors(t *testing.T) {
	ctx := context.Background()
	_, err := itemsets.Mine(ctx, dataset.FromTransactions(basketTransactions()), itemsets.Options{MinSupport: 1.5})
	assert.ErrorIs(t, err, itemset.ErrInvalidSupport)

	_, err = itemsets.Mine(ctx, dataset.New(nil), itemsets.Options{MinSupport: 0.5})
	assert.ErrorIs(t, err, itemset.ErrEmptyDataset)

	_, err = itemsets.MineTransactions(basketTransactions(), itemsets.Options{MinSupport: 0.5, Algorithm: "eclat"})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = itemsets.Mine(cancelled, dataset.FromTransactions(basketTransactions()), itemsets.Options{MinSupport: 0.5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMineLogsAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	metrics := itemsets.NewMetrics(reg)

	_, err := itemsets.MineTransactions(basketTransactions(), itemsets.Options{
		MinSupport: 0.4,
		Logger:     zap.New(core),
		Metrics:    metrics,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("mined frequent itemsets").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].ContextMap()["itemsets"])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("fp")))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.Transactions))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.MinCount))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.FrequentTotal.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FrequentTotal.WithLabelValues("3")))

	path := filepath.Join(t.TempDir(), "itemsets.prom")
	require.NoError(t, itemsets.WriteTextfile(path, reg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `itemsets_runs_total{algorithm="fp"} 1`)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := itemsets.ParseAlgorithm("apriori")
	require.NoError(t, err)
	assert.Equal(t, itemsets.Apriori, a)
	_, err = itemsets.ParseAlgorithm("FP")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	a := itemset.NewTable(10)
	a.Add(itemset.Of("x"), 5)
	a.Add(itemset.Of("x", "y"), 3)
	b := itemset.NewTable(10)
	b.Add(itemset.Of("x"), 5)
	b.Add(itemset.Of("x", "y"), 4)
	b.Add(itemset.Of("z"), 2)

	diffs := itemsets.Compare(a, b, 1e-9)
	require.Len(t, diffs, 2)
	assert.Equal(t, "{x, y} support 0.3 != 0.4", diffs[0].String())
	assert.Equal(t, "{z} only in second: 0.2", diffs[1].String())

	assert.Empty(t, itemsets.Compare(a, a, 0))
	assert.Len(t, itemsets.Compare(a, b, 0.2), 1)
}

func TestMineFPKeepsItemsThatLookLikeItemsets(t *testing.T) {
	table, err := itemsets.MineFP(itemset.Transactions(items{"a\x1fb"}, items{"a", "b"}), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())
	assert.True(t, table.Contains(itemset.Of("a\x1fb")))
	assert.True(t, table.Contains(itemset.Of("a", "b")))

	table, err = itemsets.MineFP(itemset.Transactions(items{""}, items{"", "a"}), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	e, ok := table.Get(itemset.Of(""))
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)
	assert.False(t, table.Contains(itemset.Of()))
}
