/*
Package mongodataset provides a implementation of dataset.Dataset
that uses a MongoDB database as backend.

Every basket is a document on the baskets collection of the default
database of the session:

	{"_id": "<basket id>", "items": {"<item>": <quantity>, ...}}
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/google/uuid"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a dataset.Dataset to which baskets can be added
and from which baskets can be sequentially read
*/
type Dataset interface {
	dataset.Dataset
	dataset.Writer
	Read(context.Context) (<-chan dataset.Basket, <-chan error)
}

type mongodataset struct {
	session *mgo.Session
}

type basketDoc struct {
	ID    string             `bson:"_id"`
	Items map[string]float64 `bson:"items"`
}

const (
	basketsCollectionName = "baskets"
)

/*
Open takes a MongoDB database session and returns a
Dataset that works on the default database for
that session.
*/
func Open(ctx context.Context, session *mgo.Session) (Dataset, error) {
	return &mongodataset{session}, nil
}

func (mds *mongodataset) Baskets(ctx context.Context) ([]dataset.Basket, error) {
	var baskets []dataset.Basket
	count, err := mds.Count(ctx)
	if err == nil {
		baskets = make([]dataset.Basket, 0, count)
	}
	basketChan, errs := mds.Read(ctx)
	for b := range basketChan {
		baskets = append(baskets, b)
	}
	err = <-errs
	return baskets, err
}

func (mds *mongodataset) Transactions(ctx context.Context) ([]itemset.Transaction, error) {
	baskets, err := mds.Baskets(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Strip(baskets), nil
}

func (mds *mongodataset) Count(context.Context) (int, error) {
	return mds.basketsCollection().Count()
}

func (mds *mongodataset) Write(ctx context.Context, baskets []dataset.Basket) (int, error) {
	docs := make([]interface{}, 0, len(baskets))
	for _, b := range baskets {
		doc, err := encode(b)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := mds.basketsCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(baskets), nil
}

func (mds *mongodataset) Flush(context.Context) error {
	return nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan dataset.Basket, <-chan error) {
	baskets := make(chan dataset.Basket)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(baskets)
		var doc basketDoc
		iter := mds.basketsCollection().Find(bson.M{}).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case baskets <- decode(doc):
			}
			doc = basketDoc{}
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return baskets, errs
}

func (mds *mongodataset) basketsCollection() *mgo.Collection {
	return mds.session.DB("").C(basketsCollectionName)
}

func encode(b dataset.Basket) (basketDoc, error) {
	doc := basketDoc{ID: b.ID, Items: make(map[string]float64, len(b.Quantities))}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	for item, q := range b.Quantities {
		name := string(item)
		if strings.ContainsAny(name, ".$") {
			return doc, fmt.Errorf("invalid item name %q: contains reserved characters %q or %q", name, ".", "$")
		}
		doc.Items[name] = q
	}
	return doc, nil
}

func decode(doc basketDoc) dataset.Basket {
	b := dataset.Basket{ID: doc.ID, Quantities: make(map[itemset.Item]float64, len(doc.Items))}
	for name, q := range doc.Items {
		b.Quantities[itemset.Item(name)] = q
	}
	return b
}
