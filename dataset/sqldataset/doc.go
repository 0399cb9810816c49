/*
Package sqldataset provides an implementation of dataset.Dataset
that uses an SQL database as backend.

The dataset uses a single basket_items table with a row for every
item of every basket:

	id              row number, used to keep the read order
	transaction_id  ID of the basket
	item            name of the item, NULL for a basket with no items
	quantity        quantity of the item bought

The SQL dialect is hidden behind the Adapter interface, implemented
for SQLite3 by the sqlite3adapter package and for PostgreSQL by the
pgadapter package.
*/
package sqldataset
