package sqldataset_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/dataset/sqldataset"
	"github.com/JosephHardy91/itemSets/dataset/sqldataset/sqlite3adapter"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDataset(t *testing.T) sqldataset.Dataset {
	t.Helper()
	a, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "baskets.db"))
	require.NoError(t, err)
	d, err := sqldataset.Create(context.Background(), a)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestWriteAndRead(t *testing.T) {
	ctx := context.Background()
	d := createDataset(t)

	baskets := []dataset.Basket{
		{ID: "t1", Quantities: map[itemset.Item]float64{"milk": 2, "bread": 1}},
		{ID: "t2", Quantities: map[itemset.Item]float64{}},
		{Quantities: map[itemset.Item]float64{"eggs": 12}},
	}
	n, err := d.Write(ctx, baskets)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, d.Flush(ctx))

	count, err := d.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	read, err := d.Baskets(ctx)
	require.NoError(t, err)
	require.Len(t, read, 3)
	assert.Equal(t, "t1", read[0].ID)
	assert.Equal(t, baskets[0].Quantities, read[0].Quantities)
	assert.Equal(t, "t2", read[1].ID)
	assert.Empty(t, read[1].Quantities)
	assert.NotEmpty(t, read[2].ID)
	assert.Equal(t, baskets[2].Quantities, read[2].Quantities)

	txs, err := d.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, txs[1].Len())
	assert.True(t, txs[0].Has("milk"))
}

func TestCopyFromMemory(t *testing.T) {
	ctx := context.Background()
	d := createDataset(t)
	src := dataset.FromTransactions(itemset.Transactions(
		[]itemset.Item{"a", "b"},
		[]itemset.Item{"a"},
	))
	n, err := dataset.Copy(ctx, d, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	txs, err := d.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, itemset.Count(txs, itemset.Of("a", "b")))
	assert.Equal(t, 2, itemset.Count(txs, itemset.Of("a")))
}
