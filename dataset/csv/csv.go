/*
Package csv reads and writes baskets as CSV streams.

Every row of the stream is a basket, and every non-empty cell of a row is
one of its items, optionally followed by a colon and the quantity bought:

	bread,milk:2,eggs:12
	milk:1.5

Items without a quantity get a quantity of 1. A basket with no items is
written as a row of empty cells, a lone comma, since blank lines are
skipped when reading.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/itemset"
)

/*
Writer is a dataset.Writer that keeps count of the baskets written to it.
*/
type Writer interface {
	dataset.Writer
	// Count returns the total number of baskets written
	// to the writer
	Count() int
}

var emptyBasketRecord = []string{"", ""}

type csvWriter struct {
	count int
	w     *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream and returns a dataset held
in memory with the baskets parsed from it or an error.
*/
func ReadDataset(reader io.Reader) (dataset.Dataset, error) {
	var baskets []dataset.Basket
	err := ReadByBasket(reader, func(_ int, b dataset.Basket) (bool, error) {
		baskets = append(baskets, b)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(baskets), nil
}

/*
ReadByBasket takes an io.Reader for a CSV stream and a lambda function on
an integer and a dataset.Basket that returns a boolean value. It parses
the baskets from the reader and for each it calls the lambda function with
the basket and its index as parameters. If the lambda function returns
true, it will continue processing the next basket, otherwise it will stop.
An error is returned if something goes wrong when reading the stream or
parsing a basket.

The ID of every basket is the number of the line it was read from.
*/
func ReadByBasket(reader io.Reader, lambda func(int, dataset.Basket) (bool, error)) error {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading basket %d: %w", i+1, err)
		}
		line, _ := r.FieldPos(0)
		b, err := parseBasket(strconv.Itoa(line), row)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", line, err)
		}
		ok, err := lambda(i, b)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, opens the file to which
the filepath points to and uses ReadDataset to return the dataset read
from it. If the filepath is "" os.Stdin is read instead.
*/
func ReadDatasetFromFilePath(filepath string) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening baskets: %w", err)
		}
		defer f.Close()
	}
	d, err := ReadDataset(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return d, err
}

/*
NewWriter takes an io.Writer and returns a Writer that will write any
baskets on it as CSV rows.
*/
func NewWriter(writer io.Writer) Writer {
	return &csvWriter{w: csv.NewWriter(writer)}
}

/*
WriteDataset takes a writer and a dataset and dumps the baskets of the
dataset to the writer in CSV format.
*/
func WriteDataset(ctx context.Context, writer io.Writer, d dataset.Dataset) error {
	_, err := dataset.Copy(ctx, NewWriter(writer), d)
	return err
}

func parseBasket(id string, row []string) (dataset.Basket, error) {
	b := dataset.Basket{ID: id, Quantities: make(map[itemset.Item]float64, len(row))}
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		name, quantity := cell, 1.0
		if i := strings.LastIndexByte(cell, ':'); i >= 0 {
			q, err := strconv.ParseFloat(cell[i+1:], 64)
			if err != nil {
				return b, fmt.Errorf("converting quantity of %q to float64: %w", cell[:i], err)
			}
			name, quantity = cell[:i], q
		}
		if name == "" {
			return b, fmt.Errorf("cell %q has no item", cell)
		}
		b.Quantities[itemset.Item(name)] += quantity
	}
	return b, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, baskets []dataset.Basket) (int, error) {
	for n, b := range baskets {
		if err := cw.writeBasket(b); err != nil {
			return n, err
		}
	}
	return len(baskets), nil
}

func (cw *csvWriter) writeBasket(b dataset.Basket) error {
	items := b.Items()
	record := emptyBasketRecord
	if len(items) > 0 {
		record = make([]string, len(items))
	}
	for i, item := range items {
		q := b.Quantities[item]
		if q == 1 {
			record[i] = string(item)
		} else {
			record[i] = fmt.Sprintf("%s:%s", item, strconv.FormatFloat(q, 'g', -1, 64))
		}
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for basket %d: %w", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush(context.Context) error {
	cw.w.Flush()
	return cw.w.Error()
}
