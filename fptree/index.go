package fptree

import (
	"sort"

	"github.com/JosephHardy91/itemSets/itemset"
)

/*
Index holds the occurrence counts of the items that reach a minimum
count and defines the rank order in which those items are laid along the
branches of a tree: descending count, ties broken by ascending item.

Every tree built by this package, conditional ones included, orders its
items through an Index, so ties are broken the same way everywhere.
*/
type Index struct {
	counts   itemset.FrequencyTable
	minCount int
	ranked   []itemset.Item
}

/*
NewIndex takes a slice of transactions and a minimum count and returns
the index of the items occurring in at least minCount transactions.
*/
func NewIndex(transactions []itemset.Transaction, minCount int) *Index {
	counts := make(itemset.FrequencyTable)
	for _, t := range transactions {
		for _, item := range t.Items() {
			counts[item]++
		}
	}
	return newIndex(counts, minCount)
}

/*
NewWeightedIndex takes a slice of paths and a minimum count and returns
the index of the items whose summed path counts reach minCount. Each path
adds its count once to every item on it.
*/
func NewWeightedIndex(paths []Path, minCount int) *Index {
	return NewCountedIndex(PathCounts(paths), minCount)
}

// PathCounts sums, for every item, the counts of the paths it is on.
func PathCounts(paths []Path) itemset.FrequencyTable {
	counts := make(itemset.FrequencyTable)
	for _, p := range paths {
		for _, item := range p.Items {
			counts[item] += p.Count
		}
	}
	return counts
}

// NewCountedIndex returns the index of the items whose count in counts
// reaches minCount. The counts are not retained.
func NewCountedIndex(counts itemset.FrequencyTable, minCount int) *Index {
	return newIndex(counts, minCount)
}

func newIndex(counts itemset.FrequencyTable, minCount int) *Index {
	ix := &Index{counts: make(itemset.FrequencyTable), minCount: minCount}
	for item, c := range counts {
		if c >= minCount {
			ix.counts[item] = c
			ix.ranked = append(ix.ranked, item)
		}
	}
	sort.Slice(ix.ranked, func(i, j int) bool { return ix.Less(ix.ranked[i], ix.ranked[j]) })
	return ix
}

// MinCount returns the threshold the index was built with.
func (ix *Index) MinCount() int {
	return ix.minCount
}

// Len returns the number of frequent items.
func (ix *Index) Len() int {
	return len(ix.ranked)
}

// Count returns the count of a frequent item, 0 for any other item.
func (ix *Index) Count(item itemset.Item) int {
	return ix.counts[item]
}

// Frequent returns whether the item reached the minimum count.
func (ix *Index) Frequent(item itemset.Item) bool {
	_, ok := ix.counts[item]
	return ok
}

// Counts returns a copy of the counts of the frequent items.
func (ix *Index) Counts() itemset.FrequencyTable {
	result := make(itemset.FrequencyTable, len(ix.counts))
	for item, c := range ix.counts {
		result[item] = c
	}
	return result
}

// Rank returns the sort key of an item: its negated count and the item
// itself as tie-break.
func (ix *Index) Rank(item itemset.Item) (int, itemset.Item) {
	return -ix.counts[item], item
}

// Less returns whether a ranks before b, that is, whether a is more
// frequent than b or equally frequent and smaller.
func (ix *Index) Less(a, b itemset.Item) bool {
	ca, cb := ix.counts[a], ix.counts[b]
	if ca != cb {
		return ca > cb
	}
	return a < b
}

// Items returns the frequent items from the most to the least frequent.
func (ix *Index) Items() []itemset.Item {
	result := make([]itemset.Item, len(ix.ranked))
	copy(result, ix.ranked)
	return result
}

/*
Reorder takes a slice of items and returns a new slice with only the
frequent ones, sorted by rank (most frequent first). Repeated items are
kept once.
*/
func (ix *Index) Reorder(items []itemset.Item) []itemset.Item {
	result := make([]itemset.Item, 0, len(items))
	seen := make(map[itemset.Item]bool, len(items))
	for _, item := range items {
		if ix.Frequent(item) && !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return ix.Less(result[i], result[j]) })
	return result
}
