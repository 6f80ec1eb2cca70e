package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/storage"
)

// ResultStore implements storage.ResultStore on BadgerDB.
type ResultStore struct {
	backend *Backend
}

var _ storage.ResultStore = (*ResultStore)(nil)

// NewResultStore opens a result store at the given path, creating the
// directory if needed.
func NewResultStore(path string) (*ResultStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ResultStore{backend: backend}, nil
}

// Close closes the underlying database.
func (r *ResultStore) Close() error {
	return r.backend.Close()
}

// StoreResult persists a query result under its query ID. Storing under an
// existing ID replaces the previous result and its index entry in the same
// transaction.
func (r *ResultStore) StoreResult(ctx context.Context, result *core.QueryResult) error {
	if result.QueryID == "" {
		return core.ErrEmptyQueryID
	}
	if result.Query == "" {
		return core.ErrEmptyQuery
	}

	result.CreatedAt = time.Now().UTC()
	result.EvidenceCount = len(result.Evidence)

	value, err := storage.MarshalQueryResult(result)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResultKey(result.QueryID)

		// Drop the previous index entry on overwrite
		old, err := readResult(tx, key)
		if err != nil {
			return err
		}
		if old != nil {
			if err := tx.Delete(makeResultDateKey(old.CreatedAt, old.QueryID)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, value); err != nil {
			return err
		}
		dateKey := makeResultDateKey(result.CreatedAt, result.QueryID)
		if err := tx.Set(dateKey, []byte(result.QueryID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetResult retrieves a result by query ID.
func (r *ResultStore) GetResult(ctx context.Context, queryID string) (*core.QueryResult, error) {
	if queryID == "" {
		return nil, core.ErrEmptyQueryID
	}

	var result *core.QueryResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readResult(tx, makeResultKey(queryID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListResults returns all stored results ordered by creation time, most
// recent first. The creation-time index gives the order without loading
// records out of sequence.
func (r *ResultStore) ListResults(ctx context.Context) ([]*core.QueryResult, error) {
	var results []*core.QueryResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(resultDatePrefix + ":")

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration starts past the last key in the prefix range
		seek := append(append([]byte{}, prefix...), 0xFF)
		for iter.Seek(seek); iter.ValidForPrefix(prefix); iter.Next() {
			var queryID string
			err := iter.Item().Value(func(val []byte) error {
				queryID = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			result, err := readResult(tx, makeResultKey(queryID))
			if err != nil {
				return err
			}
			if result != nil {
				results = append(results, result)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// readResult reads and deserializes a result, returning nil when the key
// does not exist.
func readResult(tx *badger.Txn, key []byte) (*core.QueryResult, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var result *core.QueryResult
	err = item.Value(func(val []byte) error {
		var err error
		result, err = storage.UnmarshalQueryResult(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
