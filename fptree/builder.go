package fptree

import (
	"github.com/JosephHardy91/itemSets/itemset"
)

/*
Build takes a slice of transactions and a minimum count and returns the
tree of the transactions: each one is filtered down to the items reaching
minCount, reordered by rank and inserted with a count of 1.
*/
func Build(transactions []itemset.Transaction, minCount int) *Tree {
	index := NewIndex(transactions, minCount)
	t := New(index)
	for _, tx := range transactions {
		t.Insert(index.Reorder(tx.Items()), 1)
	}
	return t
}

/*
BuildWeighted takes a slice of paths, such as a conditional pattern base,
and a minimum count and returns a new tree where each path is inserted,
filtered and reordered by an index over the paths, with its own count.
The returned tree shares no node with the tree the paths came from.
*/
func BuildWeighted(paths []Path, minCount int) *Tree {
	return BuildCounted(paths, PathCounts(paths), minCount)
}

// BuildCounted is BuildWeighted for callers that already hold the
// PathCounts of the paths.
func BuildCounted(paths []Path, counts itemset.FrequencyTable, minCount int) *Tree {
	index := NewCountedIndex(counts, minCount)
	t := New(index)
	if index.Len() == 0 {
		return t
	}
	for _, p := range paths {
		t.Insert(index.Reorder(p.Items), p.Count)
	}
	return t
}
