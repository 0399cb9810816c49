/*
Package itemset defines the values the mining engines work on: items,
transactions, itemsets and tables of frequent itemsets with their support.

It also holds the conversion from a support ratio to the absolute
transaction count used as mining threshold and the errors shared by the
engines.
*/
package itemset

import (
	"sort"
	"strconv"
	"strings"
)

// Item identifies a product, event or any other thing that can be part
// of a transaction. Items are totally ordered by string comparison.
type Item string

/*
Key is the canonical, order-independent representation of an Itemset.
Two itemsets holding the same items have the same Key, so it can be
used to index maps. Every item is written as its length in bytes, a
colon and the item itself, so any item, including the empty one, maps
to exactly one key:

	{}        -> ""
	{""}      -> "0:"
	{a, bc}   -> "1:a2:bc"
*/
type Key string

/*
Itemset is an immutable set of items. Its items are kept sorted and
deduplicated, so equality does not depend on the order in which they
were given.
*/
type Itemset struct {
	items []Item
}

/*
New takes a slice of items and returns the itemset holding them.
Duplicated items are kept only once. The given slice is not retained.
*/
func New(items []Item) Itemset {
	if len(items) == 0 {
		return Itemset{}
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	n := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[n-1] {
			sorted[n] = sorted[i]
			n++
		}
	}
	return Itemset{sorted[:n]}
}

// Of returns the itemset holding the given items.
func Of(items ...Item) Itemset {
	return New(items)
}

// FromKey rebuilds the itemset a Key was obtained from. Decoding stops
// at the first malformed item.
func FromKey(k Key) Itemset {
	var items []Item
	rest := string(k)
	for rest != "" {
		colon := strings.IndexByte(rest, ':')
		if colon < 0 {
			break
		}
		n, err := strconv.Atoi(rest[:colon])
		if err != nil || n < 0 || colon+1+n > len(rest) {
			break
		}
		items = append(items, Item(rest[colon+1:colon+1+n]))
		rest = rest[colon+1+n:]
	}
	return New(items)
}

// Len returns the number of items in the itemset.
func (s Itemset) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in the itemset in ascending order.
func (s Itemset) Items() []Item {
	result := make([]Item, len(s.items))
	copy(result, s.items)
	return result
}

// Key returns the canonical key of the itemset.
func (s Itemset) Key() Key {
	if len(s.items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range s.items {
		b.WriteString(strconv.Itoa(len(item)))
		b.WriteByte(':')
		b.WriteString(string(item))
	}
	return Key(b.String())
}

// Less orders itemsets by comparing their sorted items one by one, a
// prefix going before the longer itemset.
func (s Itemset) Less(o Itemset) bool {
	for i := 0; i < len(s.items) && i < len(o.items); i++ {
		if s.items[i] != o.items[i] {
			return s.items[i] < o.items[i]
		}
	}
	return len(s.items) < len(o.items)
}

// Contains returns whether the item belongs to the itemset.
func (s Itemset) Contains(item Item) bool {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= item })
	return i < len(s.items) && s.items[i] == item
}

// SubsetOf returns whether every item in s belongs to o.
func (s Itemset) SubsetOf(o Itemset) bool {
	if len(s.items) > len(o.items) {
		return false
	}
	j := 0
	for _, item := range s.items {
		for j < len(o.items) && o.items[j] < item {
			j++
		}
		if j == len(o.items) || o.items[j] != item {
			return false
		}
		j++
	}
	return true
}

// Equal returns whether both itemsets hold the same items.
func (s Itemset) Equal(o Itemset) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Union returns the itemset with the items of both s and o.
func (s Itemset) Union(o Itemset) Itemset {
	result := make([]Item, 0, len(s.items)+len(o.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(o.items) {
		switch {
		case s.items[i] < o.items[j]:
			result = append(result, s.items[i])
			i++
		case s.items[i] > o.items[j]:
			result = append(result, o.items[j])
			j++
		default:
			result = append(result, s.items[i])
			i++
			j++
		}
	}
	result = append(result, s.items[i:]...)
	result = append(result, o.items[j:]...)
	return Itemset{result}
}

// With returns the itemset with the items of s plus the given one.
func (s Itemset) With(item Item) Itemset {
	if s.Contains(item) {
		return s
	}
	return s.Union(Itemset{[]Item{item}})
}

// Minus returns the itemset with the items of s that do not belong to o.
func (s Itemset) Minus(o Itemset) Itemset {
	result := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !o.Contains(item) {
			result = append(result, item)
		}
	}
	return Itemset{result}
}

// Without returns the itemset with the items of s except the given one.
func (s Itemset) Without(item Item) Itemset {
	return s.Minus(Itemset{[]Item{item}})
}

func (s Itemset) String() string {
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		parts[i] = string(item)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
