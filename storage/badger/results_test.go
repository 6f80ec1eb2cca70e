package badger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/storage"
)

func newTestStore(t *testing.T) *ResultStore {
	t.Helper()

	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(queryID string) *core.QueryResult {
	return &core.QueryResult{
		QueryID: queryID,
		Query:   "laptops assigned to alice",
		Evidence: []core.EvidenceItem{
			{
				Source:          "documents/assets.csv",
				SourceType:      core.SourceTypeDocument,
				Title:           "Evidence from assets.csv",
				Description:     "Found 1 relevant records.",
				Data:            map[string]any{"filename": "assets.csv"},
				ConfidenceScore: 0.85,
			},
		},
		Summary: "One matching asset record.",
	}
}

func TestStoreAndGetResult(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	result := sampleResult("q-1")
	require.NoError(t, store.StoreResult(ctx, result))

	assert.False(t, result.CreatedAt.IsZero())
	assert.Equal(t, 1, result.EvidenceCount)

	got, err := store.GetResult(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", got.QueryID)
	assert.Equal(t, result.Query, got.Query)
	assert.Equal(t, result.Summary, got.Summary)
	assert.Equal(t, 1, got.EvidenceCount)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, "Evidence from assets.csv", got.Evidence[0].Title)
	assert.Equal(t, 0.85, got.Evidence[0].ConfidenceScore)
	assert.True(t, got.CreatedAt.Equal(result.CreatedAt))
}

func TestStoreResultValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty query id", func(t *testing.T) {
		result := sampleResult("")
		assert.Equal(t, core.ErrEmptyQueryID, store.StoreResult(ctx, result))
	})

	t.Run("empty query", func(t *testing.T) {
		result := sampleResult("q-2")
		result.Query = ""
		assert.Equal(t, core.ErrEmptyQuery, store.StoreResult(ctx, result))
	})
}

func TestStoreResultOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleResult("q-1")
	require.NoError(t, store.StoreResult(ctx, first))

	second := sampleResult("q-1")
	second.Summary = "Updated summary."
	second.Evidence = nil
	require.NoError(t, store.StoreResult(ctx, second))

	got, err := store.GetResult(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated summary.", got.Summary)
	assert.Equal(t, 0, got.EvidenceCount)
	assert.Empty(t, got.Evidence)

	// The stale index entry is dropped, so the listing has a single entry.
	results, err := store.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "q-1", results[0].QueryID)
	assert.Equal(t, "Updated summary.", results[0].Summary)
}

func TestGetResultNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetResult(context.Background(), "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	_, err = store.GetResult(context.Background(), "")
	assert.Equal(t, core.ErrEmptyQueryID, err)
}

func TestListResultsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		result := sampleResult(fmt.Sprintf("q-%d", i))
		require.NoError(t, store.StoreResult(ctx, result))
		// Creation timestamps must differ for the order to be observable.
		time.Sleep(2 * time.Millisecond)
	}

	results, err := store.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "q-3", results[0].QueryID)
	assert.Equal(t, "q-2", results[1].QueryID)
	assert.Equal(t, "q-1", results[2].QueryID)
}

func TestListResultsEmpty(t *testing.T) {
	store := newTestStore(t)

	results, err := store.ListResults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStoreAfterClose(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = store.StoreResult(context.Background(), sampleResult("q-1"))
	assert.Error(t, err)
}
