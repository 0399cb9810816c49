/*
Package itemsets finds the frequent itemsets of a set of transactions:
the groups of items bought together in at least a given fraction of them.

Two algorithms are provided. FP-growth compresses the transactions into an
FP-tree (package fptree) and mines it by pattern growth (package
fpgrowth); apriori (package apriori) counts candidates level by level and
serves as the reference to check FP-growth against. Both return an
itemset.Table mapping every frequent itemset to its support, and package
stats computes support, confidence and lift from such a table.

Transactions are read from any dataset.Dataset: CSV files, SQLite3 and
PostgreSQL databases, Redis and MongoDB are supported by the sub-packages
of dataset. The itemsets command in cmd/itemsets wires it all together.
*/
package itemsets
