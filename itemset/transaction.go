package itemset

import "fmt"

/*
Transaction is a set of distinct items observed together, a basket.
Quantities, if any were read, have already been stripped or turned into
items of their own.
*/
type Transaction struct {
	// ID identifies the transaction on the source it was read from.
	// It may be empty.
	ID    string
	items map[Item]struct{}
}

/*
NewTransaction takes a number of items and returns a transaction with
them. Repeated items are counted once.
*/
func NewTransaction(items ...Item) Transaction {
	t := Transaction{items: make(map[Item]struct{}, len(items))}
	for _, item := range items {
		t.items[item] = struct{}{}
	}
	return t
}

// Has returns whether the item is part of the transaction.
func (t Transaction) Has(item Item) bool {
	_, ok := t.items[item]
	return ok
}

// Contains returns whether every item in the itemset is part of the
// transaction. Every transaction contains the empty itemset.
func (t Transaction) Contains(s Itemset) bool {
	if len(s.items) > len(t.items) {
		return false
	}
	for _, item := range s.items {
		if _, ok := t.items[item]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of distinct items in the transaction.
func (t Transaction) Len() int {
	return len(t.items)
}

// Items returns the items of the transaction in ascending order.
func (t Transaction) Items() []Item {
	return t.Itemset().items
}

// Itemset returns the items of the transaction as an itemset.
func (t Transaction) Itemset() Itemset {
	items := make([]Item, 0, len(t.items))
	for item := range t.items {
		items = append(items, item)
	}
	return New(items)
}

func (t Transaction) String() string {
	if t.ID == "" {
		return t.Itemset().String()
	}
	return fmt.Sprintf("%s%v", t.ID, t.Itemset())
}

// Transactions builds transactions out of slices of items, mostly
// useful to write down small datasets.
func Transactions(baskets ...[]Item) []Transaction {
	result := make([]Transaction, len(baskets))
	for i, b := range baskets {
		result[i] = NewTransaction(b...)
	}
	return result
}

// Count returns the number of transactions containing the itemset.
func Count(transactions []Transaction, s Itemset) int {
	var n int
	for _, t := range transactions {
		if t.Contains(s) {
			n++
		}
	}
	return n
}
