/*
Package apriori mines frequent itemsets level by level: the candidates of
size k are the unions of size k of every pair of frequent itemsets of size
k-1, and each level is counted with a full scan over the transactions.

It needs one scan per level and its candidate sets grow combinatorially
with the number of frequent items, but it is simple enough to be trusted,
and serves as the reference the fp-growth miner is checked against.
*/
package apriori

import (
	"sort"
	"sync"

	"github.com/JosephHardy91/itemSets/itemset"
	"go.uber.org/zap"
)

// Engine mines frequent itemsets with the apriori algorithm.
type Engine struct {
	workers int
	maxSize int
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of goroutines counting the candidates of
// a level. Values below 2 count on the calling goroutine.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithMaxSize stops the search after the level of itemsets of the given
// size. 0 or less means no limit.
func WithMaxSize(n int) Option {
	return func(e *Engine) {
		e.maxSize = n
	}
}

// WithLogger sets the logger the engine reports every level to.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine configured with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mine mines the transactions with a default Engine. See Engine.Mine.
func Mine(transactions []itemset.Transaction, minSupport float64, minSize int) (*itemset.Table, error) {
	return New().Mine(transactions, minSupport, minSize)
}

/*
Mine takes a slice of transactions, a minimum support ratio and a minimum
itemset size and returns the table of the itemsets of at least minSize
items contained in at least ceil(minSupport × len(transactions))
transactions.

It returns itemset.ErrInvalidSupport if minSupport is outside (0, 1] and
itemset.ErrEmptyDataset if there are no transactions.
*/
func (e *Engine) Mine(transactions []itemset.Transaction, minSupport float64, minSize int) (*itemset.Table, error) {
	minCount, err := itemset.MinSupportCount(minSupport, len(transactions))
	if err != nil {
		return nil, err
	}
	return e.MineCount(transactions, minCount, minSize)
}

// MineCount works like Mine with the minimum support given as a number
// of transactions.
func (e *Engine) MineCount(transactions []itemset.Transaction, minCount, minSize int) (*itemset.Table, error) {
	if err := itemset.ValidateCount(minCount, len(transactions)); err != nil {
		return nil, err
	}
	result := itemset.NewTable(len(transactions))
	candidates := singletons(transactions)
	for k := 1; len(candidates) > 0; k++ {
		counts := e.count(transactions, candidates)
		var survivors []itemset.Itemset
		for i, c := range candidates {
			if counts[i] >= minCount {
				survivors = append(survivors, c)
				if c.Len() >= minSize {
					result.Add(c, counts[i])
				}
			}
		}
		e.logger.Debug("apriori level",
			zap.Int("k", k),
			zap.Int("candidates", len(candidates)),
			zap.Int("frequent", len(survivors)))
		if e.maxSize > 0 && k >= e.maxSize {
			break
		}
		candidates = join(survivors, k+1)
	}
	return result, nil
}

// singletons returns an itemset for every distinct item, sorted.
func singletons(transactions []itemset.Transaction) []itemset.Itemset {
	seen := make(map[itemset.Item]bool)
	var items []itemset.Item
	for _, t := range transactions {
		for _, item := range t.Items() {
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	result := make([]itemset.Itemset, len(items))
	for i, item := range items {
		result[i] = itemset.Of(item)
	}
	return result
}

/*
join returns the distinct unions of size k of every pair of the given
itemsets, in the order they are first found.
*/
func join(frequent []itemset.Itemset, k int) []itemset.Itemset {
	var result []itemset.Itemset
	seen := make(map[itemset.Key]bool)
	for i := 0; i < len(frequent); i++ {
		for j := i + 1; j < len(frequent); j++ {
			u := frequent[i].Union(frequent[j])
			if u.Len() != k {
				continue
			}
			key := u.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, u)
		}
	}
	return result
}

// count returns the number of transactions containing each candidate.
func (e *Engine) count(transactions []itemset.Transaction, candidates []itemset.Itemset) []int {
	counts := make([]int, len(candidates))
	workers := e.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 2 {
		countRange(transactions, candidates, counts)
		return counts
	}
	chunk := (len(candidates) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			countRange(transactions, candidates[start:end], counts[start:end])
		}(start, end)
	}
	wg.Wait()
	return counts
}

func countRange(transactions []itemset.Transaction, candidates []itemset.Itemset, counts []int) {
	for _, t := range transactions {
		for i, c := range candidates {
			if t.Contains(c) {
				counts[i]++
			}
		}
	}
}
