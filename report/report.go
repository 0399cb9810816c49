/*
Package report writes tables of frequent itemsets for people to read, as
plain text, or for programs, as JSON.
*/
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/JosephHardy91/itemSets/stats"
)

// Options control how WriteText lays out a table.
type Options struct {
	// BySize groups the itemsets under a heading per size.
	BySize bool
	// SortBySupport lists the most supported itemsets first instead of
	// in item order.
	SortBySupport bool
	// Lift adds, under every itemset of two or more items, how much
	// likelier each of its items is to sell along with the rest.
	Lift bool
}

/*
WriteText writes the itemsets of the table to w, one per line. The engine
is only used for lift lines and may be nil when opts.Lift is false.
*/
func WriteText(w io.Writer, table *itemset.Table, engine *stats.Engine, opts Options) error {
	if opts.Lift && engine == nil {
		return fmt.Errorf("lift requested without a stats engine")
	}
	entries := sorted(table.Entries(), opts.SortBySupport)
	if !opts.BySize {
		for _, e := range entries {
			if err := writeEntry(w, e, engine, opts); err != nil {
				return err
			}
		}
		return nil
	}
	groups := make(map[int][]itemset.Entry)
	var sizes []int
	for _, e := range entries {
		n := e.Itemset.Len()
		if _, ok := groups[n]; !ok {
			sizes = append(sizes, n)
		}
		groups[n] = append(groups[n], e)
	}
	sort.Ints(sizes)
	for _, n := range sizes {
		if _, err := fmt.Fprintf(w, "Itemsets of size %d:\n", n); err != nil {
			return err
		}
		for _, e := range groups[n] {
			if err := writeEntry(w, e, engine, opts); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func sorted(entries []itemset.Entry, bySupport bool) []itemset.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if bySupport && entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Itemset.Less(entries[j].Itemset)
	})
	return entries
}

func writeEntry(w io.Writer, e itemset.Entry, engine *stats.Engine, opts Options) error {
	if _, err := fmt.Fprintf(w, "Frequent itemset: %v, Support: %.4f\n", e.Itemset, e.Support); err != nil {
		return err
	}
	if !opts.Lift || e.Itemset.Len() < 2 {
		return nil
	}
	for _, item := range e.Itemset.Items() {
		lift, err := engine.Lift(e.Itemset, item)
		if err != nil {
			return err
		}
		support, err := engine.Support(itemset.Of(item))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "--Times likelier to sell %s: %.2fx (sell chance %.2f -> %.2f)\n",
			item, lift, support, lift*support)
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonItemset struct {
	Items   []itemset.Item `json:"items"`
	Count   int            `json:"count"`
	Support float64        `json:"support"`
}

type jsonTable struct {
	Total    int           `json:"total"`
	Itemsets []jsonItemset `json:"itemsets"`
}

// WriteJSON writes the table to w as a JSON document holding the total
// number of transactions and every itemset with its count and support.
func WriteJSON(w io.Writer, table *itemset.Table) error {
	doc := jsonTable{Total: table.Total(), Itemsets: []jsonItemset{}}
	for _, e := range table.Entries() {
		doc.Itemsets = append(doc.Itemsets, jsonItemset{Items: e.Itemset.Items(), Count: e.Count, Support: e.Support})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
