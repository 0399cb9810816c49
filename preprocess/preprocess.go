/*
Package preprocess turns baskets with quantities into transactions for the
miners, either dropping the quantities or bucketing them so that buying
little and buying a lot of an item count as different items.

An item bought in bucket b is renamed item#b, where b is the position of
its quantity among the bin edges of the item: the index of the first edge
not lower than the quantity. Bin edges split the range of quantities the
item was bought in, across every basket, into equal-width bins.
*/
package preprocess

import (
	"errors"
	"fmt"
	"sort"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
)

// ErrInvalidBins is returned when asked for less than one bin.
var ErrInvalidBins = errors.New("preprocess: number of bins must be at least 1")

/*
Bins returns the bins+1 edges of equal-width bins spanning the quantities
the item was bought in. When every quantity is the same value v the edges
span v-0.5 to v+0.5, and when the item is never bought they span 0 to 1.
*/
func Bins(baskets []dataset.Basket, item itemset.Item, bins int) ([]float64, error) {
	if bins < 1 {
		return nil, ErrInvalidBins
	}
	var quantities []float64
	for _, b := range baskets {
		if q, ok := b.Quantities[item]; ok {
			quantities = append(quantities, q)
		}
	}
	return edges(quantities, bins), nil
}

func edges(quantities []float64, bins int) []float64 {
	lo, hi := 0.0, 1.0
	if len(quantities) > 0 {
		lo, hi = quantities[0], quantities[0]
		for _, q := range quantities[1:] {
			if q < lo {
				lo = q
			}
			if q > hi {
				hi = q
			}
		}
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	result := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range result {
		result[i] = lo + float64(i)*width
	}
	result[bins] = hi
	return result
}

// Bucket returns the index of the first edge not lower than the quantity.
func Bucket(edges []float64, quantity float64) int {
	return sort.SearchFloat64s(edges, quantity)
}

// BucketItem returns the name the item gets when bought in the bucket.
func BucketItem(item itemset.Item, bucket int) itemset.Item {
	return itemset.Item(fmt.Sprintf("%s#%d", item, bucket))
}

/*
BinAll replaces every item of every basket with the item of the bucket its
quantity falls in, using the given number of bins per item, and returns
the resulting transactions in the same order as the baskets.
*/
func BinAll(baskets []dataset.Basket, bins int) ([]itemset.Transaction, error) {
	if bins < 1 {
		return nil, ErrInvalidBins
	}
	quantities := make(map[itemset.Item][]float64)
	for _, b := range baskets {
		for item, q := range b.Quantities {
			quantities[item] = append(quantities[item], q)
		}
	}
	itemEdges := make(map[itemset.Item][]float64, len(quantities))
	for item, qs := range quantities {
		itemEdges[item] = edges(qs, bins)
	}
	result := make([]itemset.Transaction, len(baskets))
	for i, b := range baskets {
		items := make([]itemset.Item, 0, len(b.Quantities))
		for _, item := range b.Items() {
			items = append(items, BucketItem(item, Bucket(itemEdges[item], b.Quantities[item])))
		}
		result[i] = itemset.NewTransaction(items...)
		result[i].ID = b.ID
	}
	return result, nil
}

// Strip drops the quantities of the baskets.
func Strip(baskets []dataset.Basket) []itemset.Transaction {
	return dataset.Strip(baskets)
}
