package itemset

import (
	"fmt"
	"sort"
)

// FrequencyTable maps items to the number of transactions they occur in.
type FrequencyTable map[Item]int

// Entry is a frequent itemset together with the number of transactions
// that contain it and its support ratio.
type Entry struct {
	Itemset Itemset
	Count   int
	Support float64
}

/*
Table holds the frequent itemsets found by a mining run. Supports are
ratios of the number of transactions containing the itemset over the
fixed total of transactions the run was performed on.
*/
type Table struct {
	total   int
	entries map[Key]Entry
}

// NewTable returns an empty table for a run over total transactions.
func NewTable(total int) *Table {
	return &Table{total: total, entries: make(map[Key]Entry)}
}

// Total returns the number of transactions supports are relative to.
func (t *Table) Total() int {
	return t.total
}

// Add records an itemset with the number of transactions containing it.
// A previously recorded count for the same itemset is replaced.
func (t *Table) Add(s Itemset, count int) {
	var support float64
	if t.total > 0 {
		support = float64(count) / float64(t.total)
	}
	t.entries[s.Key()] = Entry{Itemset: s, Count: count, Support: support}
}

// Get returns the entry for the itemset and whether it was found.
func (t *Table) Get(s Itemset) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[s.Key()]
	return e, ok
}

// Support returns the support ratio of the itemset and whether it was
// found on the table.
func (t *Table) Support(s Itemset) (float64, bool) {
	e, ok := t.Get(s)
	return e.Support, ok
}

// Contains returns whether the itemset is on the table.
func (t *Table) Contains(s Itemset) bool {
	_, ok := t.Get(s)
	return ok
}

// Len returns the number of itemsets on the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Merge adds all entries in o to t. Both tables must refer to the same
// total.
func (t *Table) Merge(o *Table) error {
	if o.total != t.total {
		return fmt.Errorf("merging tables over %d and %d transactions", t.total, o.total)
	}
	for k, e := range o.entries {
		t.entries[k] = e
	}
	return nil
}

/*
Entries returns the entries on the table ordered by itemset size, then by
descending support and then by items, so the result is deterministic.
*/
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	result := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Itemset.Len() != b.Itemset.Len() {
			return a.Itemset.Len() < b.Itemset.Len()
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Itemset.Less(b.Itemset)
	})
	return result
}

// Filter returns a table with the entries whose itemset size is at least
// minSize and, when maxSize is positive, at most maxSize.
func (t *Table) Filter(minSize, maxSize int) *Table {
	result := NewTable(t.total)
	for k, e := range t.entries {
		n := e.Itemset.Len()
		if n < minSize || (maxSize > 0 && n > maxSize) {
			continue
		}
		result.entries[k] = e
	}
	return result
}

// Items returns every item appearing on some itemset of the table.
func (t *Table) Items() map[Item]bool {
	result := make(map[Item]bool)
	if t == nil {
		return result
	}
	for _, e := range t.entries {
		for _, item := range e.Itemset.items {
			result[item] = true
		}
	}
	return result
}

func (t *Table) String() string {
	return fmt.Sprintf("[ %d itemsets over %d transactions ]", t.Len(), t.total)
}
