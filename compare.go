package itemsets

import (
	"fmt"
	"math"
	"sort"

	"github.com/JosephHardy91/itemSets/itemset"
)

// Difference is an itemset two tables disagree on.
type Difference struct {
	Itemset itemset.Itemset
	// InA and InB tell whether each table holds the itemset, and A and B
	// give its support on each.
	InA, InB bool
	A, B     float64
}

func (d Difference) String() string {
	switch {
	case !d.InB:
		return fmt.Sprintf("%v only in first: %g", d.Itemset, d.A)
	case !d.InA:
		return fmt.Sprintf("%v only in second: %g", d.Itemset, d.B)
	}
	return fmt.Sprintf("%v support %g != %g", d.Itemset, d.A, d.B)
}

/*
Compare returns the itemsets found on only one of the tables or whose
supports on both differ by more than tolerance, ordered by itemset.
*/
func Compare(a, b *itemset.Table, tolerance float64) []Difference {
	var result []Difference
	for _, e := range a.Entries() {
		o, ok := b.Get(e.Itemset)
		if !ok {
			result = append(result, Difference{Itemset: e.Itemset, InA: true, A: e.Support})
			continue
		}
		if math.Abs(e.Support-o.Support) > tolerance {
			result = append(result, Difference{Itemset: e.Itemset, InA: true, InB: true, A: e.Support, B: o.Support})
		}
	}
	for _, o := range b.Entries() {
		if !a.Contains(o.Itemset) {
			result = append(result, Difference{Itemset: o.Itemset, InB: true, B: o.Support})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Itemset.Less(result[j].Itemset)
	})
	return result
}
