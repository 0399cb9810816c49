/*
Package dataset defines the collections of baskets the miners read their
transactions from, as well as an interface for the ones that can be
written to.

It also provides an in-memory implementation. Implementations backed by
CSV streams, SQL databases, Redis and MongoDB live in the sub-packages.
*/
package dataset
