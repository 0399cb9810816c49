/*
Package fptree provides the frequent-pattern tree: a prefix tree where
every transaction is laid down as a branch from the root after dropping
its infrequent items and sorting the rest from the most to the least
frequent. Transactions sharing their most frequent items share the
nodes for them, so counts accumulate instead of repeating.

An Index computes the item counts and the rank order, Build and
BuildWeighted create trees out of transactions or counted paths, and a
Tree exposes its header table and the conditional pattern base of every
item for the miner in package fpgrowth.

Nodes own their children; the parent link of a node is only followed
upwards to rebuild paths.
*/
package fptree
