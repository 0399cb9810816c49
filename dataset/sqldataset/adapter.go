package sqldataset

import "context"

/*
Row is a row of the basket_items table. An empty Item stands for the
NULL item of a basket with no items.
*/
type Row struct {
	TransactionID string
	Item          string
	Quantity      float64
}

/*
Adapter is an interface providing the methods
needed to implement a Dataset with a database backend.
*/
type Adapter interface {
	// CreateBasketTable ensures the basket_items table exists.
	CreateBasketTable(context.Context) error
	// AddRows inserts the rows and returns how many were inserted.
	AddRows(context.Context, []Row) (int, error)
	// IterateOnRows calls lambda with every row in insertion order
	// until it returns false or an error.
	IterateOnRows(ctx context.Context, lambda func(int, Row) (bool, error)) error
	// CountBaskets returns the number of distinct transaction ids.
	CountBaskets(context.Context) (int, error)
	Close() error
}
