package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
)

func TestEncode(t *testing.T) {
	doc, err := encode(dataset.Basket{ID: "t1", Quantities: map[itemset.Item]float64{"milk": 2}})
	require.NoError(t, err)
	assert.Equal(t, basketDoc{ID: "t1", Items: map[string]float64{"milk": 2}}, doc)
	assert.Equal(t, dataset.Basket{ID: "t1", Quantities: map[itemset.Item]float64{"milk": 2}}, decode(doc))

	doc, err = encode(dataset.NewBasket("", "bread"))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)

	_, err = encode(dataset.NewBasket("t2", "a.b"))
	assert.Error(t, err)
	_, err = encode(dataset.NewBasket("t3", "$a"))
	assert.Error(t, err)
}

// TestRoundTrip runs against the MongoDB database at the
// ITEMSETS_TEST_MONGO URL.
func TestRoundTrip(t *testing.T) {
	url := os.Getenv("ITEMSETS_TEST_MONGO")
	if url == "" {
		t.Skip("ITEMSETS_TEST_MONGO not set")
	}
	ctx := context.Background()
	session, err := mgo.Dial(url)
	require.NoError(t, err)
	defer session.Close()
	_, err = session.DB("").C(basketsCollectionName).RemoveAll(nil)
	require.NoError(t, err)

	d, err := Open(ctx, session)
	require.NoError(t, err)
	n, err := d.Write(ctx, []dataset.Basket{
		dataset.NewBasket("a", "bread", "milk"),
		dataset.NewBasket("b"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := d.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	txs, err := d.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 1, itemset.Count(txs, itemset.Of("bread", "milk")))
}
