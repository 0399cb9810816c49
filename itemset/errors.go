package itemset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSupport indicates a support ratio outside (0, 1] or a
	// support count below 1.
	ErrInvalidSupport = errors.New("itemset: support must be a ratio in (0, 1] resolving to a count of at least 1")
	// ErrEmptyDataset indicates there are no transactions to mine.
	ErrEmptyDataset = errors.New("itemset: dataset has no transactions")
	// ErrUnknownItem indicates a statistic was requested for an item found
	// neither on the frequent itemset table nor on any transaction.
	ErrUnknownItem = errors.New("itemset: unknown item")
	// ErrDivisionByZero indicates the denominator of a confidence or lift
	// computation has zero support.
	ErrDivisionByZero = errors.New("itemset: denominator support is zero")
)

// UnknownItemError carries the item that could not be found.
// It matches ErrUnknownItem with errors.Is.
type UnknownItemError struct {
	Item Item
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("itemset: unknown item %q", string(e.Item))
}

// Is reports whether target is ErrUnknownItem.
func (e *UnknownItemError) Is(target error) bool {
	return target == ErrUnknownItem
}
