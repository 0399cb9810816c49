package sqldataset

import (
	"context"
	"fmt"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/google/uuid"
)

/*
Dataset is a dataset.Dataset backed by an SQL database to which
baskets can be written.
*/
type Dataset interface {
	dataset.Dataset
	dataset.Writer
	Close() error
}

type sqlDataset struct {
	db    Adapter
	count *int
}

/*
Open takes an Adapter to a db backend and returns a Dataset backed by
it. The basket_items table is expected to exist already.
*/
func Open(ctx context.Context, dbAdapter Adapter) (Dataset, error) {
	return &sqlDataset{db: dbAdapter}, nil
}

/*
Create takes an Adapter and returns a Dataset backed by it, ensuring
the basket_items table exists on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter) (Dataset, error) {
	if err := dbAdapter.CreateBasketTable(ctx); err != nil {
		return nil, err
	}
	return &sqlDataset{db: dbAdapter}, nil
}

func (sd *sqlDataset) Count(ctx context.Context) (int, error) {
	if sd.count != nil {
		return *sd.count, nil
	}
	result, err := sd.db.CountBaskets(ctx)
	if err == nil {
		sd.count = &result
	}
	return result, err
}

func (sd *sqlDataset) Baskets(ctx context.Context) ([]dataset.Basket, error) {
	var result []dataset.Basket
	index := make(map[string]int)
	err := sd.db.IterateOnRows(ctx, func(_ int, r Row) (bool, error) {
		i, ok := index[r.TransactionID]
		if !ok {
			i = len(result)
			index[r.TransactionID] = i
			result = append(result, dataset.Basket{ID: r.TransactionID, Quantities: make(map[itemset.Item]float64)})
		}
		if r.Item != "" {
			result[i].Quantities[itemset.Item(r.Item)] += r.Quantity
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading basket items: %w", err)
	}
	return result, nil
}

func (sd *sqlDataset) Transactions(ctx context.Context) ([]itemset.Transaction, error) {
	baskets, err := sd.Baskets(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Strip(baskets), nil
}

/*
Write stores the baskets, giving a random ID to the ones without one.
A basket with no items is stored as a single row with a NULL item so
that it still counts towards the total.
*/
func (sd *sqlDataset) Write(ctx context.Context, baskets []dataset.Basket) (int, error) {
	var rows []Row
	ends := make([]int, len(baskets))
	for i, b := range baskets {
		id := b.ID
		if id == "" {
			id = uuid.NewString()
		}
		items := b.Items()
		if len(items) == 0 {
			rows = append(rows, Row{TransactionID: id})
		}
		for _, item := range items {
			rows = append(rows, Row{TransactionID: id, Item: string(item), Quantity: b.Quantities[item]})
		}
		ends[i] = len(rows)
	}
	sd.count = nil
	n, err := sd.db.AddRows(ctx, rows)
	if err != nil {
		written := 0
		for written < len(ends) && ends[written] <= n {
			written++
		}
		return written, err
	}
	return len(baskets), nil
}

func (sd *sqlDataset) Flush(context.Context) error {
	return nil
}

func (sd *sqlDataset) Close() error {
	return sd.db.Close()
}
