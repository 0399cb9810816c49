package itemset

import (
	"fmt"
	"math"
)

// ratioEpsilon absorbs the representation error of ratio × total, so that
// 0.1 × 30 resolves to 3 instead of 4.
const ratioEpsilon = 1e-9

/*
MinSupportCount takes a support ratio and a number of transactions and
returns the minimum number of transactions an itemset must appear in to be
frequent: the ceiling of ratio × total.

It returns ErrInvalidSupport if the ratio is outside (0, 1] or the count
is below 1, and ErrEmptyDataset if total is 0.
*/
func MinSupportCount(ratio float64, total int) (int, error) {
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidSupport, ratio)
	}
	if total <= 0 {
		return 0, ErrEmptyDataset
	}
	count := int(math.Ceil(ratio*float64(total) - ratioEpsilon))
	if count < 1 {
		return 0, fmt.Errorf("%w: %v of %d transactions is below one transaction", ErrInvalidSupport, ratio, total)
	}
	return count, nil
}

// ValidateCount checks a minimum support count given in transactions.
func ValidateCount(count, total int) error {
	if count < 1 {
		return fmt.Errorf("%w: got count %d", ErrInvalidSupport, count)
	}
	if total <= 0 {
		return ErrEmptyDataset
	}
	return nil
}
