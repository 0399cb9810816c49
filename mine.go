package itemsets

import (
	"context"
	"fmt"
	"time"

	"github.com/JosephHardy91/itemSets/apriori"
	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/fpgrowth"
	"github.com/JosephHardy91/itemSets/fptree"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/JosephHardy91/itemSets/preprocess"
	"go.uber.org/zap"
)

// Algorithm names a mining algorithm.
type Algorithm string

const (
	// FPGrowth mines an FP-tree of the transactions.
	FPGrowth Algorithm = "fp"
	// Apriori mines level by level with a scan per level.
	Apriori Algorithm = "apriori"
)

// ParseAlgorithm returns the algorithm with the given name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case FPGrowth, Apriori:
		return a, nil
	}
	return "", fmt.Errorf("unknown algorithm %q, expected %q or %q", name, FPGrowth, Apriori)
}

// Options configure a mining run.
type Options struct {
	// Algorithm defaults to FPGrowth.
	Algorithm Algorithm
	// MinSupport is the fraction of transactions a frequent itemset
	// must be contained in, within (0, 1].
	MinSupport float64
	// MinSize and MaxSize bound the size of the itemsets reported. A
	// MaxSize of 0 or less means no limit.
	MinSize int
	MaxSize int
	// Workers is the number of goroutines mining in parallel.
	Workers int
	// Bins, when positive, turns every item into an item per bucket of
	// its quantity before mining. See preprocess.BinAll.
	Bins    int
	Logger  *zap.Logger
	Metrics *Metrics
}

// Result is the outcome of a mining run.
type Result struct {
	Algorithm    Algorithm
	Table        *itemset.Table
	Transactions []itemset.Transaction
	MinCount     int
	Duration     time.Duration
}

/*
Mine reads the transactions of the dataset and mines them with the given
options. When opts.Bins is positive the baskets of the dataset are read
instead and their items bucketed by quantity.
*/
func Mine(ctx context.Context, d dataset.Dataset, opts Options) (*Result, error) {
	var transactions []itemset.Transaction
	if opts.Bins > 0 {
		baskets, err := d.Baskets(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading baskets: %w", err)
		}
		transactions, err = preprocess.BinAll(baskets, opts.Bins)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		transactions, err = d.Transactions(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading transactions: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return MineTransactions(transactions, opts)
}

/*
MineTransactions mines the transactions with the given options and
returns the frequent itemsets with at least opts.MinSize items and at
most opts.MaxSize items.

It returns itemset.ErrInvalidSupport if opts.MinSupport is outside
(0, 1] and itemset.ErrEmptyDataset if there are no transactions.
*/
func MineTransactions(transactions []itemset.Transaction, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = FPGrowth
	}
	minCount, err := itemset.MinSupportCount(opts.MinSupport, len(transactions))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	var table *itemset.Table
	switch algorithm {
	case FPGrowth:
		tree := fptree.Build(transactions, minCount)
		logger.Debug("fp-tree built",
			zap.Int("nodes", tree.Size()),
			zap.Int("items", len(tree.Items())))
		table, err = fpgrowth.New(
			fpgrowth.WithWorkers(opts.Workers),
			fpgrowth.WithLogger(logger),
		).Mine(tree, minCount, opts.MaxSize, len(transactions))
	case Apriori:
		table, err = apriori.New(
			apriori.WithWorkers(opts.Workers),
			apriori.WithMaxSize(opts.MaxSize),
			apriori.WithLogger(logger),
		).MineCount(transactions, minCount, opts.MinSize)
	default:
		_, err = ParseAlgorithm(string(algorithm))
	}
	if err != nil {
		return nil, err
	}
	result := &Result{
		Algorithm:    algorithm,
		Table:        table.Filter(opts.MinSize, opts.MaxSize),
		Transactions: transactions,
		MinCount:     minCount,
		Duration:     time.Since(start),
	}
	logger.Info("mined frequent itemsets",
		zap.String("algorithm", string(algorithm)),
		zap.Int("transactions", len(transactions)),
		zap.Int("minCount", minCount),
		zap.Int("itemsets", result.Table.Len()),
		zap.Duration("duration", result.Duration))
	opts.Metrics.Observe(result)
	return result, nil
}

/*
MineFP mines the transactions with fp-growth and returns every itemset of
at most maxSize items (0 or less for no limit) contained in at least
minCount transactions.
*/
func MineFP(transactions []itemset.Transaction, minCount, maxSize int) (*itemset.Table, error) {
	if err := itemset.ValidateCount(minCount, len(transactions)); err != nil {
		return nil, err
	}
	return fpgrowth.Mine(fptree.Build(transactions, minCount), minCount, maxSize, len(transactions))
}

/*
MineApriori mines the transactions with apriori and returns every itemset
of at least minSize items contained in at least
ceil(minSupport × len(transactions)) transactions.
*/
func MineApriori(transactions []itemset.Transaction, minSupport float64, minSize int) (*itemset.Table, error) {
	return apriori.Mine(transactions, minSupport, minSize)
}
