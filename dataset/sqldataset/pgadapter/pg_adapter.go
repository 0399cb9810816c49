/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/JosephHardy91/itemSets/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

const (
	basketTableCreateStmt = `CREATE TABLE IF NOT EXISTS basket_items (
		id SERIAL PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		item TEXT NULL,
		quantity DOUBLE PRECISION NOT NULL DEFAULT 1)`
	basketTableIndexStmt = `CREATE INDEX IF NOT EXISTS basket_items_transaction_id ON basket_items (transaction_id)`

	// MaxRowInsertionsPerStatement is the maximum number
	// of rows that are allowed to be added with a single
	// insert command with the AddRows method of the adapter.
	// Trying to add more will result in making more insertion commands
	MaxRowInsertionsPerStatement = 100
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) CreateBasketTable(ctx context.Context) error {
	for _, stmt := range []string{basketTableCreateStmt, basketTableIndexStmt} {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring basket_items table exists: %w", err)
		}
	}
	return nil
}

func (a *adapter) AddRows(ctx context.Context, rows []sqldataset.Row) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	for start := 0; start < len(rows); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		if _, err = tx.ExecContext(ctx, insertStmt(len(chunk)), rowValues(chunk)...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting rows %d to %d: %w", start+1, end, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %d rows: %w", len(rows), err)
	}
	return len(rows), nil
}

func (a *adapter) IterateOnRows(ctx context.Context, lambda func(int, sqldataset.Row) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, `SELECT transaction_id, item, quantity FROM basket_items ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		var r sqldataset.Row
		var item sql.NullString
		if err = rows.Scan(&r.TransactionID, &item, &r.Quantity); err != nil {
			return err
		}
		r.Item = item.String
		ok, err := lambda(j, r)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountBaskets(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT transaction_id) FROM basket_items`).Scan(&count)
	return count, err
}

func (a *adapter) Close() error {
	return a.db.Close()
}

// insertStmt returns an insert command for n rows with numbered
// placeholders.
func insertStmt(n int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO basket_items (transaction_id, item, quantity) VALUES `)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "($%d, $%d, $%d)", 3*i+1, 3*i+2, 3*i+3)
	}
	return buf.String()
}

func rowValues(rows []sqldataset.Row) []interface{} {
	values := make([]interface{}, 0, 3*len(rows))
	for _, r := range rows {
		values = append(values, r.TransactionID, sql.NullString{String: r.Item, Valid: r.Item != ""}, r.Quantity)
	}
	return values
}
