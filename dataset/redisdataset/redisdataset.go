/*
Package redisdataset provides an implementation of dataset.Dataset
that uses a Redis database as backend.

Every basket is stored as a hash from item to quantity under the key
prefix:tx:<id>, and the IDs of the baskets are kept in insertion order
on the list prefix:transactions. A basket with no items has an ID on
the list and no hash.
*/
package redisdataset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/google/uuid"
	"gopkg.in/redis.v5"
)

/*
Dataset is a dataset.Dataset backed by a Redis database to which
baskets can be written.
*/
type Dataset interface {
	dataset.Dataset
	dataset.Writer
}

type redisDataset struct {
	rc     *redis.Client
	prefix string
}

// New builds a Dataset on the given redis client storing its keys
// under the given prefix.
func New(rc *redis.Client, prefix string) Dataset {
	return &redisDataset{rc, prefix}
}

func (rd *redisDataset) Count(ctx context.Context) (int, error) {
	n, err := rd.rc.LLen(rd.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting baskets in redis: %w", err)
	}
	return int(n), nil
}

func (rd *redisDataset) Baskets(ctx context.Context) ([]dataset.Basket, error) {
	ids, err := rd.rc.LRange(rd.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing baskets in redis: %w", err)
	}
	result := make([]dataset.Basket, 0, len(ids))
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := rd.rc.HGetAll(rd.keyFor(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("retrieving basket %q: %w", id, err)
		}
		b, err := decode(id, fields)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

func (rd *redisDataset) Transactions(ctx context.Context) ([]itemset.Transaction, error) {
	baskets, err := rd.Baskets(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Strip(baskets), nil
}

/*
Write stores every basket, giving a random ID to the ones without one.
Writing a basket with an ID already present replaces its items but
lists the ID again.
*/
func (rd *redisDataset) Write(ctx context.Context, baskets []dataset.Basket) (int, error) {
	for n, b := range baskets {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		id := b.ID
		if id == "" {
			id = uuid.NewString()
		}
		key := rd.keyFor(id)
		if err := rd.rc.Del(key).Err(); err != nil {
			return n, fmt.Errorf("storing basket %q in redis: %w", id, err)
		}
		if fields := encode(b); len(fields) > 0 {
			if err := rd.rc.HMSet(key, fields).Err(); err != nil {
				return n, fmt.Errorf("storing basket %q in redis: %w", id, err)
			}
		}
		if err := rd.rc.RPush(rd.indexKey(), id).Err(); err != nil {
			return n, fmt.Errorf("indexing basket %q in redis: %w", id, err)
		}
	}
	return len(baskets), nil
}

func (rd *redisDataset) Flush(context.Context) error {
	return nil
}

func (rd *redisDataset) keyFor(id string) string {
	return fmt.Sprintf("%s:tx:%s", rd.prefix, id)
}

func (rd *redisDataset) indexKey() string {
	return fmt.Sprintf("%s:transactions", rd.prefix)
}

func encode(b dataset.Basket) map[string]string {
	fields := make(map[string]string, len(b.Quantities))
	for item, q := range b.Quantities {
		fields[string(item)] = strconv.FormatFloat(q, 'g', -1, 64)
	}
	return fields
}

func decode(id string, fields map[string]string) (dataset.Basket, error) {
	b := dataset.Basket{ID: id, Quantities: make(map[itemset.Item]float64, len(fields))}
	for item, value := range fields {
		q, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return b, fmt.Errorf("decoding quantity of %q on basket %q: %w", item, id, err)
		}
		b.Quantities[itemset.Item(item)] = q
	}
	return b, nil
}
