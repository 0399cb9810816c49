package fptree

import (
	"github.com/JosephHardy91/itemSets/itemset"
)

/*
Node is a node of the tree
*/
type Node struct {
	// The item the node stands for. Empty on the root.
	item itemset.Item
	// The number of transactions whose ordered items went through
	// this exact position of the tree.
	count int
	// The node right above this one. It is only followed to rebuild
	// the path to the root, the tree owns its nodes through children.
	parent *Node
	// Nodes directly under this one, by item, and their items in
	// insertion order.
	children map[itemset.Item]*Node
	order    []itemset.Item
}

func newNode(item itemset.Item, parent *Node) *Node {
	return &Node{item: item, parent: parent}
}

// Item returns the item on the node. The root has no item.
func (n *Node) Item() itemset.Item {
	return n.item
}

// Count returns the count of the node.
func (n *Node) Count() int {
	return n.count
}

// Parent returns the node above, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot returns whether the node is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Child returns the child for the given item or nil.
func (n *Node) Child(item itemset.Item) *Node {
	return n.children[item]
}

// Children returns the nodes directly under n in insertion order.
func (n *Node) Children() []*Node {
	result := make([]*Node, len(n.order))
	for i, item := range n.order {
		result[i] = n.children[item]
	}
	return result
}

// Path returns the items from the node's parent up to the root,
// excluding the root, nearest first.
func (n *Node) Path() []itemset.Item {
	var result []itemset.Item
	for p := n.parent; p != nil && !p.IsRoot(); p = p.parent {
		result = append(result, p.item)
	}
	return result
}

func (n *Node) addChild(item itemset.Item) *Node {
	if n.children == nil {
		n.children = make(map[itemset.Item]*Node)
	}
	c := newNode(item, n)
	n.children[item] = c
	n.order = append(n.order, item)
	return c
}
