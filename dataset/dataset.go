package dataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/JosephHardy91/itemSets/itemset"
)

/*
Basket is a transaction as read from a source: the items bought
together with the quantity of each one.
*/
type Basket struct {
	ID         string
	Quantities map[itemset.Item]float64
}

// NewBasket returns a basket with the given items, each with quantity 1.
func NewBasket(id string, items ...itemset.Item) Basket {
	b := Basket{ID: id, Quantities: make(map[itemset.Item]float64, len(items))}
	for _, item := range items {
		b.Quantities[item] = 1
	}
	return b
}

// Items returns the items of the basket in ascending order.
func (b Basket) Items() []itemset.Item {
	items := make([]itemset.Item, 0, len(b.Quantities))
	for item := range b.Quantities {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// Transaction returns the transaction of the items in the basket,
// dropping their quantities.
func (b Basket) Transaction() itemset.Transaction {
	t := itemset.NewTransaction(b.Items()...)
	t.ID = b.ID
	return t
}

func (b Basket) String() string {
	return fmt.Sprintf("[%s %v]", b.ID, b.Quantities)
}

/*
Dataset represents a collection of baskets.

Its Baskets method returns the baskets with their quantities, its
Transactions method the same baskets as transactions with the quantities
dropped, and its Count method the number of baskets.

All methods take a context that implementations backed by a database
use to allow cancelling the operation.
*/
type Dataset interface {
	Baskets(context.Context) ([]Basket, error)
	Transactions(context.Context) ([]itemset.Transaction, error)
	Count(context.Context) (int, error)
}

/*
Writer is an interface for a dataset to which baskets can be written.
*/
type Writer interface {
	// Write will attempt to write the given baskets and will return
	// the number of baskets actually written and an error if not all
	// of them could be written.
	Write(context.Context, []Basket) (int, error)
	// Flush ensures any pending write finishes before returning.
	Flush(context.Context) error
}

type memoryDataset struct {
	baskets []Basket
}

// New takes a slice of baskets and returns a dataset held in memory.
func New(baskets []Basket) Dataset {
	return &memoryDataset{baskets}
}

// FromTransactions returns a dataset held in memory with a basket with
// quantity 1 for every item of every transaction.
func FromTransactions(transactions []itemset.Transaction) Dataset {
	baskets := make([]Basket, len(transactions))
	for i, t := range transactions {
		baskets[i] = NewBasket(t.ID, t.Items()...)
	}
	return &memoryDataset{baskets}
}

func (md *memoryDataset) Baskets(ctx context.Context) ([]Basket, error) {
	return md.baskets, nil
}

func (md *memoryDataset) Transactions(ctx context.Context) ([]itemset.Transaction, error) {
	return Strip(md.baskets), nil
}

func (md *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(md.baskets), nil
}

func (md *memoryDataset) Write(ctx context.Context, baskets []Basket) (int, error) {
	md.baskets = append(md.baskets, baskets...)
	return len(baskets), nil
}

func (md *memoryDataset) Flush(ctx context.Context) error {
	return nil
}

func (md *memoryDataset) String() string {
	return fmt.Sprintf("[ %v ]", len(md.baskets))
}

// NewWriter returns an empty dataset held in memory that can also be
// written to.
func NewWriter() interface {
	Dataset
	Writer
} {
	return &memoryDataset{}
}

// Strip turns baskets into transactions dropping their quantities.
func Strip(baskets []Basket) []itemset.Transaction {
	result := make([]itemset.Transaction, len(baskets))
	for i, b := range baskets {
		result[i] = b.Transaction()
	}
	return result
}

/*
Copy reads every basket from the dataset and writes them to the writer,
flushing it at the end. It returns the number of baskets written.
*/
func Copy(ctx context.Context, w Writer, d Dataset) (int, error) {
	baskets, err := d.Baskets(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading baskets: %w", err)
	}
	n, err := w.Write(ctx, baskets)
	if err != nil {
		return n, fmt.Errorf("writing basket %d: %w", n+1, err)
	}
	if err = w.Flush(ctx); err != nil {
		return n, fmt.Errorf("flushing: %w", err)
	}
	return n, nil
}
