package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/dataset/csv"
	"github.com/JosephHardy91/itemSets/dataset/mongodataset"
	"github.com/JosephHardy91/itemSets/dataset/redisdataset"
	"github.com/JosephHardy91/itemSets/dataset/sqldataset"
	"github.com/JosephHardy91/itemSets/dataset/sqldataset/pgadapter"
	"github.com/JosephHardy91/itemSets/dataset/sqldataset/sqlite3adapter"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

const (
	defaultRedisPrefix = "itemsets"
	inputFlagUsage     = "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://), Redis (redis://host:port/prefix) or MongoDB (mongodb://) URL with the transactions (defaults to STDIN, interpreted as CSV)"
	outputFlagUsage    = "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://), Redis (redis://host:port/prefix) or MongoDB (mongodb://) URL to dump the transactions to (defaults to STDOUT in CSV)"
)

type closeFunc func() error

func noClose() error { return nil }

type redisLocation struct {
	addr     string
	password string
	db       int
	prefix   string
}

/*
parseRedisURL takes a URL like redis://:password@host:port/prefix and
returns where to find the dataset. A path made of a number selects that
database instead of a prefix, as in redis://host:port/2/prefix.
*/
func parseRedisURL(s string) (*redisLocation, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	if u.Scheme != "redis" {
		return nil, fmt.Errorf("parsing redis URL: unexpected scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parsing redis URL %s: missing host", s)
	}
	loc := &redisLocation{addr: u.Host, prefix: defaultRedisPrefix}
	if u.User != nil {
		loc.password, _ = u.User.Password()
	}
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if db, err := strconv.Atoi(parts[0]); err == nil {
		loc.db = db
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[0] != "" {
		loc.prefix = parts[0]
	}
	return loc, nil
}

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

func isSqlite3(location string) bool {
	return strings.HasSuffix(location, ".db")
}

func isRedis(location string) bool {
	return strings.HasPrefix(location, "redis://")
}

func isMongoDB(location string) bool {
	return strings.HasPrefix(location, "mongodb://")
}

/*
InputDataset opens the dataset at the given location. An empty location
reads CSV from stdin. The returned function releases whatever the dataset
holds and must be called once it is no longer used.
*/
func (rc *rootCmdConfig) InputDataset(ctx context.Context, location string, stdin io.Reader) (dataset.Dataset, closeFunc, error) {
	switch {
	case location == "":
		rc.Logf("Reading transactions from STDIN...")
		d, err := csv.ReadDataset(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("reading transactions from STDIN: %w", err)
		}
		return d, noClose, nil
	case isPostgreSQL(location), isSqlite3(location):
		return rc.sqlDataset(ctx, location, false)
	case isRedis(location):
		return rc.redisDataset(location)
	case isMongoDB(location):
		return rc.mongoDataset(ctx, location)
	}
	rc.Logf("Reading transactions from %s...", location)
	d, err := csv.ReadDatasetFromFilePath(location)
	if err != nil {
		return nil, nil, err
	}
	return d, noClose, nil
}

/*
OutputWriter opens a dataset.Writer for the given location. An empty
location writes CSV to stdout. The returned function flushes nothing: it
only releases resources, so Flush must be called on the writer first.
*/
func (rc *rootCmdConfig) OutputWriter(ctx context.Context, location string, stdout io.Writer) (dataset.Writer, closeFunc, error) {
	switch {
	case location == "":
		rc.Logf("Using STDOUT to dump transactions...")
		return csv.NewWriter(stdout), noClose, nil
	case isPostgreSQL(location), isSqlite3(location):
		d, closer, err := rc.sqlDataset(ctx, location, true)
		if err != nil {
			return nil, nil, err
		}
		return d.(dataset.Writer), closer, nil
	case isRedis(location):
		d, closer, err := rc.redisDataset(location)
		if err != nil {
			return nil, nil, err
		}
		return d.(dataset.Writer), closer, nil
	case isMongoDB(location):
		d, closer, err := rc.mongoDataset(ctx, location)
		if err != nil {
			return nil, nil, err
		}
		return d.(dataset.Writer), closer, nil
	}
	rc.Logf("Creating %s to dump transactions...", location)
	f, err := os.Create(location)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(f), f.Close, nil
}

func (rc *rootCmdConfig) sqlDataset(ctx context.Context, location string, create bool) (dataset.Dataset, closeFunc, error) {
	var adapter sqldataset.Adapter
	var err error
	if isPostgreSQL(location) {
		rc.Logf("Creating PostgreSQL adapter...")
		adapter, err = pgadapter.New(location)
	} else {
		rc.Logf("Creating SQLite3 adapter for file %s...", location)
		adapter, err = sqlite3adapter.New(location)
	}
	if err != nil {
		return nil, nil, err
	}
	var d sqldataset.Dataset
	if create {
		rc.Logf("Creating basket table...")
		d, err = sqldataset.Create(ctx, adapter)
	} else {
		rc.Logf("Opening dataset over SQL adapter...")
		d, err = sqldataset.Open(ctx, adapter)
	}
	if err != nil {
		adapter.Close()
		return nil, nil, err
	}
	return d, d.Close, nil
}

func (rc *rootCmdConfig) redisDataset(location string) (dataset.Dataset, closeFunc, error) {
	loc, err := parseRedisURL(location)
	if err != nil {
		return nil, nil, err
	}
	rc.Logf("Connecting to redis at %s, using prefix %s...", loc.addr, loc.prefix)
	client := redis.NewClient(&redis.Options{
		Addr:     loc.addr,
		Password: loc.password,
		DB:       loc.db,
	})
	if err = client.Ping().Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", loc.addr, err)
	}
	return redisdataset.New(client, loc.prefix), client.Close, nil
}

func (rc *rootCmdConfig) mongoDataset(ctx context.Context, location string) (dataset.Dataset, closeFunc, error) {
	rc.Logf("Connecting to MongoDB...")
	session, err := mgo.Dial(location)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	d, err := mongodataset.Open(ctx, session)
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	return d, func() error {
		session.Close()
		return nil
	}, nil
}
