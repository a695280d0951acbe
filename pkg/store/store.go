// Package store persists derived data between runs: per-decade statistics
// keyed by decade label, backed by badger. Recomputing stats is cheap for
// one decade but adds up across the full dataset at every launch.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mvarley/anomaly-globe/pkg/compute"
)

type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache at path.
func Open(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	// Decrease logging verbosity
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func statsKey(label string) []byte {
	return []byte(fmt.Sprintf("stats/%s", label))
}

// PutStats stores the statistics for one decade.
func (c *Cache) PutStats(label string, st compute.Stats) error {
	val, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(statsKey(label), val)
	})
}

// GetStats loads the statistics for one decade. The second return value is
// false when nothing is cached for that label.
func (c *Cache) GetStats(label string) (compute.Stats, bool, error) {
	var st compute.Stats
	var found bool
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(statsKey(label))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &st); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return compute.Stats{}, false, nil
	}
	if err != nil {
		return compute.Stats{}, false, err
	}
	return st, found, nil
}

// PutAllStats stores several decades in one write batch.
func (c *Cache) PutAllStats(stats map[string]compute.Stats) error {
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for label, st := range stats {
		val, err := json.Marshal(st)
		if err != nil {
			return err
		}
		if err := wb.Set(statsKey(label), val); err != nil {
			return err
		}
	}
	return wb.Flush()
}
