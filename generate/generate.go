/*
Package generate produces synthetic baskets to exercise the miners with.

Every function takes the *rand.Rand it draws from, so the same seed always
produces the same baskets.
*/
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
)

// DefaultMaxQuantity is the maximum quantity drawn for an item when a
// catalog does not set one.
const DefaultMaxQuantity = 100

// ErrNoItems is returned when there are no items to draw baskets from.
var ErrNoItems = errors.New("generate: no items")

/*
Catalog describes how items are bought: every item of Items goes into a
basket with its Base probability, and once an item is in a basket every
item of its Conditionals goes in with the probability given there.
*/
type Catalog struct {
	Items        []itemset.Item                            `yaml:"items"`
	Base         map[itemset.Item]float64                  `yaml:"base"`
	Conditionals map[itemset.Item]map[itemset.Item]float64 `yaml:"conditionals"`
	MaxQuantity  int                                       `yaml:"max_quantity,omitempty"`
}

// Validate checks that the catalog has items, that every probability is
// within [0, 1] and that every item it mentions is on Items.
func (c *Catalog) Validate() error {
	if len(c.Items) == 0 {
		return ErrNoItems
	}
	known := make(map[itemset.Item]bool, len(c.Items))
	for _, item := range c.Items {
		if known[item] {
			return fmt.Errorf("item %q listed twice", item)
		}
		known[item] = true
	}
	for item, p := range c.Base {
		if !known[item] {
			return fmt.Errorf("base probability for unlisted item %q", item)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("base probability %v of %q outside [0, 1]", p, item)
		}
	}
	for item, conds := range c.Conditionals {
		if !known[item] {
			return fmt.Errorf("conditionals for unlisted item %q", item)
		}
		for other, p := range conds {
			if !known[other] {
				return fmt.Errorf("conditional of %q on unlisted item %q", item, other)
			}
			if p < 0 || p > 1 {
				return fmt.Errorf("conditional probability %v of %q on %q outside [0, 1]", p, other, item)
			}
		}
	}
	if c.MaxQuantity < 0 {
		return fmt.Errorf("negative max quantity %d", c.MaxQuantity)
	}
	return nil
}

func (c *Catalog) maxQuantity() int {
	if c.MaxQuantity > 0 {
		return c.MaxQuantity
	}
	return DefaultMaxQuantity
}

/*
RandomCatalog builds a catalog for the items with base probabilities drawn
uniformly from [lo, hi), and for every item between 1 and maxConditionals
other items with conditional probabilities drawn from the same range.
*/
func RandomCatalog(r *rand.Rand, items []itemset.Item, maxConditionals int, lo, hi float64) *Catalog {
	c := &Catalog{
		Items:        append([]itemset.Item(nil), items...),
		Base:         make(map[itemset.Item]float64, len(items)),
		Conditionals: make(map[itemset.Item]map[itemset.Item]float64, len(items)),
	}
	for _, item := range items {
		c.Base[item] = lo + r.Float64()*(hi-lo)
	}
	for i, item := range items {
		others := make([]itemset.Item, 0, len(items)-1)
		others = append(others, items[:i]...)
		others = append(others, items[i+1:]...)
		if len(others) == 0 || maxConditionals < 1 {
			continue
		}
		n := 1 + r.Intn(maxConditionals)
		if n > len(others) {
			n = len(others)
		}
		r.Shuffle(len(others), func(a, b int) { others[a], others[b] = others[b], others[a] })
		conds := make(map[itemset.Item]float64, n)
		for _, other := range others[:n] {
			conds[other] = lo + r.Float64()*(hi-lo)
		}
		c.Conditionals[item] = conds
	}
	return c
}

/*
Uniform returns n baskets of between minLen and maxLen distinct items
drawn uniformly from items, each bought in a quantity between 1 and
maxQuantity.
*/
func Uniform(r *rand.Rand, items []itemset.Item, minLen, maxLen, n, maxQuantity int) ([]dataset.Basket, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid number of baskets %d", n)
	}
	if minLen < 1 || maxLen < minLen {
		return nil, fmt.Errorf("invalid basket length range [%d, %d]", minLen, maxLen)
	}
	if maxLen > len(items) {
		maxLen = len(items)
	}
	if minLen > maxLen {
		minLen = maxLen
	}
	if maxQuantity < 1 {
		maxQuantity = DefaultMaxQuantity
	}
	result := make([]dataset.Basket, n)
	for i := range result {
		size := minLen + r.Intn(maxLen-minLen+1)
		b := dataset.Basket{ID: strconv.Itoa(i + 1), Quantities: make(map[itemset.Item]float64, size)}
		for _, j := range r.Perm(len(items))[:size] {
			b.Quantities[items[j]] = float64(1 + r.Intn(maxQuantity))
		}
		result[i] = b
	}
	return result, nil
}

/*
Conditional returns n baskets drawn from the catalog. Items are first
drawn with their base probabilities; a basket left empty gets one item
picked uniformly. Then, in catalog order, every item in the basket pulls
in the items of its conditionals with their probabilities, which may in
turn pull in the items of their own conditionals further down the
catalog.
*/
func Conditional(r *rand.Rand, c *Catalog, n int) ([]dataset.Basket, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid number of baskets %d", n)
	}
	maxQuantity := c.maxQuantity()
	conditionals := make([][]itemset.Item, len(c.Items))
	for i, item := range c.Items {
		for other := range c.Conditionals[item] {
			conditionals[i] = append(conditionals[i], other)
		}
		sort.Slice(conditionals[i], func(a, b int) bool { return conditionals[i][a] < conditionals[i][b] })
	}
	quantity := func() float64 { return float64(1 + r.Intn(maxQuantity)) }
	result := make([]dataset.Basket, n)
	for i := range result {
		b := dataset.Basket{ID: strconv.Itoa(i + 1), Quantities: make(map[itemset.Item]float64)}
		for _, item := range c.Items {
			if r.Float64() < c.Base[item] {
				b.Quantities[item] = quantity()
			}
		}
		if len(b.Quantities) == 0 {
			b.Quantities[c.Items[r.Intn(len(c.Items))]] = quantity()
		}
		for j, item := range c.Items {
			if _, ok := b.Quantities[item]; !ok {
				continue
			}
			for _, other := range conditionals[j] {
				if r.Float64() < c.Conditionals[item][other] {
					b.Quantities[other] = quantity()
				}
			}
		}
		result[i] = b
	}
	return result, nil
}
