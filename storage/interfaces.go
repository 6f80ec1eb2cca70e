package storage

import (
	"context"

	"github.com/auditkit/evidenced/core"
)

// ResultStore persists completed query results.
// Implementations must be thread-safe and support concurrent access.
type ResultStore interface {
	// StoreResult persists a query result under its query ID.
	// Storing under an existing ID replaces the previous result.
	// Sets CreatedAt to the current UTC time and EvidenceCount to
	// len(Evidence) before writing.
	StoreResult(ctx context.Context, result *core.QueryResult) error

	// GetResult retrieves a result by query ID.
	// Returns ErrNotFound if no result exists for the ID.
	GetResult(ctx context.Context, queryID string) (*core.QueryResult, error)

	// ListResults returns all stored results, most recent first.
	ListResults(ctx context.Context) ([]*core.QueryResult, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
