package fptree

import (
	"fmt"
	"strings"

	"github.com/JosephHardy91/itemSets/itemset"
)

// Path is a sequence of items with the number of transactions that
// went through it.
type Path struct {
	Items []itemset.Item
	Count int
}

/*
Tree is a prefix tree of counted nodes where every transaction is laid
as a branch from the root, items ordered by the tree's Index.

Its header table lists, for every item, the nodes labelled with it in
the order they were created.
*/
type Tree struct {
	root   *Node
	header map[itemset.Item][]*Node
	index  *Index
}

// New returns an empty tree whose items are ordered by the given index.
func New(index *Index) *Tree {
	return &Tree{
		root:   newNode("", nil),
		header: make(map[itemset.Item][]*Node),
		index:  index,
	}
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Index returns the index ordering the items of the tree.
func (t *Tree) Index() *Index {
	return t.index
}

/*
Insert takes a slice of items already sorted by the tree's rank order
and a count, and lays the items down from the root: existing nodes on
the way get the count added, missing ones are created with it and linked
into the header table. Nothing is inserted for non-positive counts.
*/
func (t *Tree) Insert(items []itemset.Item, count int) {
	if count <= 0 {
		return
	}
	n := t.root
	n.count += count
	for _, item := range items {
		c := n.Child(item)
		if c == nil {
			c = n.addChild(item)
			t.header[item] = append(t.header[item], c)
		}
		c.count += count
		n = c
	}
}

// Header returns the nodes labelled with the given item.
func (t *Tree) Header(item itemset.Item) []*Node {
	nodes := t.header[item]
	result := make([]*Node, len(nodes))
	copy(result, nodes)
	return result
}

// Items returns the items on the tree from the least to the most
// frequent, the order in which they are mined.
func (t *Tree) Items() []itemset.Item {
	ranked := t.index.Items()
	result := make([]itemset.Item, 0, len(ranked))
	for i := len(ranked) - 1; i >= 0; i-- {
		if len(t.header[ranked[i]]) > 0 {
			result = append(result, ranked[i])
		}
	}
	return result
}

// ItemCount returns the sum of the counts of the nodes labelled with
// the item.
func (t *Tree) ItemCount(item itemset.Item) int {
	var total int
	for _, n := range t.header[item] {
		total += n.count
	}
	return total
}

/*
PrefixPaths returns the conditional pattern base of an item: for every
node labelled with it, the items from the node's parent up to the root
(excluding it) together with the node's count. Nodes right under the
root give empty paths, which are left out.
*/
func (t *Tree) PrefixPaths(item itemset.Item) []Path {
	nodes := t.header[item]
	result := make([]Path, 0, len(nodes))
	for _, n := range nodes {
		p := n.Path()
		if len(p) == 0 {
			continue
		}
		result = append(result, Path{Items: p, Count: n.count})
	}
	return result
}

// Branches returns every root-to-leaf path with the count of its leaf.
func (t *Tree) Branches() []Path {
	var result []Path
	var walk func(n *Node, prefix []itemset.Item)
	walk = func(n *Node, prefix []itemset.Item) {
		if !n.IsRoot() {
			prefix = append(prefix, n.item)
		}
		if len(n.order) == 0 {
			if !n.IsRoot() {
				items := make([]itemset.Item, len(prefix))
				copy(items, prefix)
				result = append(result, Path{Items: items, Count: n.count})
			}
			return
		}
		for _, c := range n.Children() {
			walk(c, prefix)
		}
	}
	walk(t.root, nil)
	return result
}

// Empty returns whether no item was ever laid on the tree.
func (t *Tree) Empty() bool {
	return len(t.root.order) == 0
}

// SinglePath returns whether no node of the tree has more than one child.
func (t *Tree) SinglePath() bool {
	for n := t.root; len(n.order) > 0; n = n.children[n.order[0]] {
		if len(n.order) > 1 {
			return false
		}
	}
	return true
}

// Size returns the number of nodes on the tree, root excluded.
func (t *Tree) Size() int {
	var total int
	for _, nodes := range t.header {
		total += len(nodes)
	}
	return total
}

func (t *Tree) String() string {
	var b strings.Builder
	writeNode(&b, t.root, "", true)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, prefix string, last bool) {
	connector, childPrefix := "├── ", prefix+"│   "
	if last {
		connector, childPrefix = "└── ", prefix+"    "
	}
	label := string(n.item)
	if n.IsRoot() {
		label = "root"
	}
	fmt.Fprintf(b, "%s%s%s:%d\n", prefix, connector, label, n.count)
	children := n.Children()
	for i, c := range children {
		writeNode(b, c, childPrefix, i == len(children)-1)
	}
}
