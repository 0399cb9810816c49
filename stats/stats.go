/*
Package stats computes the support, confidence and lift of itemsets over a
set of transactions, using the supports already known from a frequent
itemset table when available and scanning the transactions otherwise.
*/
package stats

import (
	"fmt"

	"github.com/JosephHardy91/itemSets/itemset"
)

// Engine answers support, confidence and lift queries for a fixed set of
// transactions and table of known itemsets.
type Engine struct {
	transactions []itemset.Transaction
	known        *itemset.Table
	seen         map[itemset.Item]bool
}

/*
New takes a slice of transactions and a table of known frequent itemsets
(which may be nil) and returns an Engine over them. It returns
itemset.ErrEmptyDataset if there are no transactions.
*/
func New(transactions []itemset.Transaction, known *itemset.Table) (*Engine, error) {
	if len(transactions) == 0 {
		return nil, itemset.ErrEmptyDataset
	}
	seen := known.Items()
	for _, t := range transactions {
		for _, item := range t.Items() {
			seen[item] = true
		}
	}
	return &Engine{transactions: transactions, known: known, seen: seen}, nil
}

/*
Support returns the fraction of transactions containing every item of the
itemset. The support stored on the known table is returned when the
itemset is on it. An itemset holding an item found neither on the table
nor on any transaction gets an *itemset.UnknownItemError.
*/
func (e *Engine) Support(s itemset.Itemset) (float64, error) {
	if support, ok := e.known.Support(s); ok {
		return support, nil
	}
	for _, item := range s.Items() {
		if !e.seen[item] {
			return 0, &itemset.UnknownItemError{Item: item}
		}
	}
	return float64(itemset.Count(e.transactions, s)) / float64(len(e.transactions)), nil
}

/*
Confidence returns the support of the itemset divided by the support of the
base item: how often the itemset shows up among the transactions that hold
the base item.
*/
func (e *Engine) Confidence(base itemset.Item, s itemset.Itemset) (float64, error) {
	all, err := e.Support(s)
	if err != nil {
		return 0, err
	}
	bs, err := e.Support(itemset.Of(base))
	if err != nil {
		return 0, err
	}
	if bs == 0 {
		return 0, fmt.Errorf("confidence of %v on %q: %w", s, string(base), itemset.ErrDivisionByZero)
	}
	return all / bs, nil
}

/*
Lift returns how much likelier the rest of the itemset is to show up with
the base item than on its own:

	(support(s) / support({base})) / support(s - {base})

It is 1 when the base item occurs independently of the rest.
*/
func (e *Engine) Lift(s itemset.Itemset, base itemset.Item) (float64, error) {
	all, err := e.Support(s)
	if err != nil {
		return 0, err
	}
	bs, err := e.Support(itemset.Of(base))
	if err != nil {
		return 0, err
	}
	rest, err := e.Support(s.Without(base))
	if err != nil {
		return 0, err
	}
	if bs == 0 || rest == 0 {
		return 0, fmt.Errorf("lift of %v on %q: %w", s, string(base), itemset.ErrDivisionByZero)
	}
	return (all / bs) / rest, nil
}

// Support computes the support of the items over the transactions. See
// Engine.Support.
func Support(transactions []itemset.Transaction, known *itemset.Table, items ...itemset.Item) (float64, error) {
	e, err := New(transactions, known)
	if err != nil {
		return 0, err
	}
	return e.Support(itemset.New(items))
}

// Confidence computes the confidence of the items on the base item over
// the transactions. See Engine.Confidence.
func Confidence(base itemset.Item, items itemset.Itemset, transactions []itemset.Transaction, known *itemset.Table) (float64, error) {
	e, err := New(transactions, known)
	if err != nil {
		return 0, err
	}
	return e.Confidence(base, items)
}

// Lift computes the lift of the items on the base item over the
// transactions. See Engine.Lift.
func Lift(transactions []itemset.Transaction, known *itemset.Table, items itemset.Itemset, base itemset.Item) (float64, error) {
	e, err := New(transactions, known)
	if err != nil {
		return 0, err
	}
	return e.Lift(items, base)
}
