package pgadapter

import (
	"testing"

	"github.com/JosephHardy91/itemSets/dataset/sqldataset"
	"github.com/stretchr/testify/assert"
)

func TestInsertStmt(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO basket_items (transaction_id, item, quantity) VALUES ($1, $2, $3), ($4, $5, $6)`,
		insertStmt(2))
}

func TestRowValues(t *testing.T) {
	values := rowValues([]sqldataset.Row{
		{TransactionID: "t1", Item: "milk", Quantity: 2},
		{TransactionID: "t2"},
	})
	assert.Len(t, values, 6)
	assert.Equal(t, "t1", values[0])
	assert.Equal(t, 2.0, values[2])
	assert.Equal(t, "t2", values[3])
}
