/*
Package fpgrowth mines the frequent itemsets of an fptree.Tree by
frequent-pattern growth: for every item of a tree, from the least to the
most frequent, it gathers the conditional pattern base of the item, builds
a new conditional tree out of it and mines that tree for the itemsets
ending with the item.

Recursion is replaced by a work-list of conditional trees, so the depth of
the call stack does not grow with the number of frequent items. Branches
share nothing, and a Miner with more than one worker mines them in
parallel, merging the itemsets found by every worker at the end.
*/
package fpgrowth

import (
	"sync"

	"github.com/JosephHardy91/itemSets/fptree"
	"github.com/JosephHardy91/itemSets/itemset"
	"go.uber.org/zap"
)

// Miner mines frequent itemsets out of trees.
type Miner struct {
	workers int
	logger  *zap.Logger
}

// Option configures a Miner.
type Option func(*Miner)

// WithWorkers sets the number of goroutines mining conditional trees.
// Values below 2 mine on the calling goroutine.
func WithWorkers(n int) Option {
	return func(m *Miner) {
		m.workers = n
	}
}

// WithLogger sets the logger the miner reports its progress to.
func WithLogger(l *zap.Logger) Option {
	return func(m *Miner) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Miner configured with the given options.
func New(opts ...Option) *Miner {
	m := &Miner{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mine mines the tree with a default Miner. See Miner.Mine.
func Mine(tree *fptree.Tree, minCount, maxSize, total int) (*itemset.Table, error) {
	return New().Mine(tree, minCount, maxSize, total)
}

/*
Mine takes a tree built with a minimum count of minCount, the maximum
size of the itemsets to find (0 or less for no limit) and the total number
of transactions the tree was built from, and returns the table of every
itemset found in at least minCount transactions with its support relative
to total.

It returns itemset.ErrInvalidSupport if minCount is below 1 and
itemset.ErrEmptyDataset if total is 0.
*/
func (m *Miner) Mine(tree *fptree.Tree, minCount, maxSize, total int) (*itemset.Table, error) {
	if err := itemset.ValidateCount(minCount, total); err != nil {
		return nil, err
	}
	q := newQueue()
	q.push(task{tree: tree})
	workers := m.workers
	if workers < 1 {
		workers = 1
	}
	tables := make([]*itemset.Table, workers)
	trees := make([]int, workers)
	if workers == 1 {
		tables[0], trees[0] = m.work(q, minCount, maxSize, total)
	} else {
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(i int) {
				defer wg.Done()
				tables[i], trees[i] = m.work(q, minCount, maxSize, total)
			}(i)
		}
		wg.Wait()
	}
	result := tables[0]
	mined := trees[0]
	for i := 1; i < workers; i++ {
		if err := result.Merge(tables[i]); err != nil {
			return nil, err
		}
		mined += trees[i]
	}
	m.logger.Debug("fp-growth done",
		zap.Int("itemsets", result.Len()),
		zap.Int("trees", mined),
		zap.Int("workers", workers),
		zap.Int("minCount", minCount))
	return result, nil
}

// work pulls tasks until the queue is drained and returns the itemsets
// it found and the number of trees it mined.
func (m *Miner) work(q *queue, minCount, maxSize, total int) (*itemset.Table, int) {
	table := itemset.NewTable(total)
	var mined int
	for {
		t, ok := q.pull()
		if !ok {
			return table, mined
		}
		q.push(expand(t, minCount, maxSize, table)...)
		q.complete()
		mined++
	}
}

/*
expand mines one conditional tree: it records on the table every itemset
made of the task's suffix plus one item of the tree, and returns the tasks
for the conditional trees of those itemsets that can still grow.
*/
func expand(t task, minCount, maxSize int, table *itemset.Table) []task {
	var next []task
	for _, item := range t.tree.Items() {
		count := t.tree.ItemCount(item)
		if count < minCount {
			continue
		}
		suffix := t.suffix.With(item)
		if maxSize > 0 && suffix.Len() > maxSize {
			continue
		}
		table.Add(suffix, count)
		if maxSize > 0 && suffix.Len() == maxSize {
			continue
		}
		base := PatternBase(t.tree, item)
		cond := fptree.BuildCounted(base, ConditionalCounts(base), minCount)
		if cond.Empty() {
			continue
		}
		if cond.SinglePath() {
			minePath(cond, suffix, maxSize, table)
			continue
		}
		next = append(next, task{tree: cond, suffix: suffix})
	}
	return next
}

/*
minePath records every itemset made of the suffix plus a non-empty
combination of the nodes of a single path tree. Going down the path,
each node's count is the count of any combination whose deepest node it
is, so no further tree needs to be built.
*/
func minePath(tree *fptree.Tree, suffix itemset.Itemset, maxSize int, table *itemset.Table) {
	combos := []itemset.Itemset{suffix}
	for n := tree.Root(); ; {
		children := n.Children()
		if len(children) != 1 {
			return
		}
		n = children[0]
		grown := make([]itemset.Itemset, 0, len(combos))
		for _, c := range combos {
			if maxSize > 0 && c.Len() >= maxSize {
				continue
			}
			s := c.With(n.Item())
			table.Add(s, n.Count())
			grown = append(grown, s)
		}
		combos = append(combos, grown...)
	}
}

// PatternBase returns the conditional pattern base of an item on the tree.
func PatternBase(tree *fptree.Tree, item itemset.Item) []fptree.Path {
	return tree.PrefixPaths(item)
}

/*
ConditionalCounts aggregates a conditional pattern base into the number
of transactions each item occurs in together with the base's suffix. The
count of a path is the count of the suffix node it leads to, which never
exceeds the count of any node on the path.
*/
func ConditionalCounts(base []fptree.Path) itemset.FrequencyTable {
	return fptree.PathCounts(base)
}
