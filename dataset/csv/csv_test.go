package csv_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/dataset/csv"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDataset(t *testing.T) {
	ctx := context.Background()
	d, err := csv.ReadDataset(strings.NewReader("bread,milk:2,eggs:12\nmilk:1.5\n a , b:3 ,\n"))
	require.NoError(t, err)

	baskets, err := d.Baskets(ctx)
	require.NoError(t, err)
	require.Len(t, baskets, 3)
	assert.Equal(t, "1", baskets[0].ID)
	assert.Equal(t, map[itemset.Item]float64{"bread": 1, "milk": 2, "eggs": 12}, baskets[0].Quantities)
	assert.Equal(t, map[itemset.Item]float64{"milk": 1.5}, baskets[1].Quantities)
	assert.Equal(t, map[itemset.Item]float64{"a": 1, "b": 3}, baskets[2].Quantities)

	n, err := d.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	txs, err := d.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []itemset.Item{"bread", "eggs", "milk"}, txs[0].Items())
}

func TestReadDatasetSumsRepeatedItems(t *testing.T) {
	d, err := csv.ReadDataset(strings.NewReader("a,a:2\n"))
	require.NoError(t, err)
	baskets, err := d.Baskets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, baskets[0].Quantities["a"])
}

func TestReadDatasetErrors(t *testing.T) {
	_, err := csv.ReadDataset(strings.NewReader("a\nb:lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = csv.ReadDataset(strings.NewReader(":3\n"))
	require.Error(t, err)
}

func TestReadByBasketStops(t *testing.T) {
	var seen []string
	err := csv.ReadByBasket(strings.NewReader("a\nb\nc\n"), func(i int, b dataset.Basket) (bool, error) {
		seen = append(seen, b.ID)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestWriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	original := dataset.New([]dataset.Basket{
		{ID: "1", Quantities: map[itemset.Item]float64{"milk": 2, "bread": 1}},
		{ID: "2", Quantities: map[itemset.Item]float64{"eggs": 0.5}},
	})
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	n, err := dataset.Copy(ctx, w, original)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Count())
	assert.Equal(t, "bread,milk:2\neggs:0.5\n", buf.String())

	read, err := csv.ReadDataset(&buf)
	require.NoError(t, err)
	want, _ := original.Baskets(ctx)
	got, err := read.Baskets(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Quantities, got[i].Quantities)
	}
}

func TestWriteKeepsEmptyBaskets(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	n, err := w.Write(ctx, []dataset.Basket{
		dataset.NewBasket("1", "bread"),
		{ID: "2"},
		{ID: "3", Quantities: map[itemset.Item]float64{"milk": 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, w.Flush(ctx))
	assert.Equal(t, "bread\n,\nmilk:2\n", buf.String())

	read, err := csv.ReadDataset(&buf)
	require.NoError(t, err)
	count, err := read.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	txs, err := read.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, txs[1].Len())
}
