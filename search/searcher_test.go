package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/evidenced/ai/mock"
	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/corpus"
)

// fixedResolver returns an intent with no restatement or parameters so term
// extraction sees only the query text.
func fixedResolver() *mock.MockIntentResolver {
	resolver := mock.NewMockIntentResolver()
	resolver.ResolveFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return &core.Intent{QueryType: core.QueryTypeDocument, Text: ""}, nil
	}
	return resolver
}

func TestNewDocumentSearcher(t *testing.T) {
	provider := corpus.NewMemoryProvider()
	resolver := mock.NewMockIntentResolver()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewDocumentSearcher(provider, resolver)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		assert.Equal(t, provider, searcher.Provider())
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewDocumentSearcher(nil, resolver)
		assert.Equal(t, ErrProviderRequired, err)
	})

	t.Run("nil resolver", func(t *testing.T) {
		_, err := NewDocumentSearcher(provider, nil)
		assert.Equal(t, ErrResolverRequired, err)
	})
}

func TestSearchDocumentTabular(t *testing.T) {
	searcher, err := NewDocumentSearcher(corpus.NewMemoryProvider(), fixedResolver())
	require.NoError(t, err)

	doc := &corpus.Document{
		Name:        "assets.csv",
		ContentType: corpus.ContentTypeCSV,
		Rows: []map[string]any{
			{"asset": "macbook laptop", "status": "assigned", "user": "alice"},
			{"asset": "dell monitor", "status": "in stock"},
			{"user": "alice", "status": "active"},
		},
	}

	matches, err := searcher.SearchDocument(context.Background(), doc, "laptops assigned to alice")
	require.NoError(t, err)

	// The monitor row scores zero and is dropped; the remaining rows come
	// back ordered by score.
	require.Len(t, matches, 2)
	assert.Equal(t, "macbook laptop", matches[0].Fields["asset"])
	assert.Equal(t, 1.0, matches[0].Score)
	assert.Equal(t, "active", matches[1].Fields["status"])
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "Assigned to: alice, assigned", matches[0].Reason)
}

func TestSearchDocumentTruncation(t *testing.T) {
	searcher, err := NewDocumentSearcher(corpus.NewMemoryProvider(), fixedResolver())
	require.NoError(t, err)

	rows := make([]map[string]any, 0, MaxMatches+5)
	for i := 0; i < MaxMatches+5; i++ {
		rows = append(rows, map[string]any{"location": fmt.Sprintf("office %d", i)})
	}
	doc := &corpus.Document{Name: "sites.csv", ContentType: corpus.ContentTypeCSV, Rows: rows}

	matches, err := searcher.SearchDocument(context.Background(), doc, "office")
	require.NoError(t, err)
	assert.Len(t, matches, MaxMatches)
}

func TestSearchDocumentText(t *testing.T) {
	searcher, err := NewDocumentSearcher(corpus.NewMemoryProvider(), fixedResolver())
	require.NoError(t, err)

	doc := &corpus.Document{
		Name:        "incident.txt",
		ContentType: corpus.ContentTypeText,
		Text:        "A security incident was reported on March 3.",
	}

	matches, err := searcher.SearchDocument(context.Background(), doc, "security incident")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, doc.Text, matches[0].Content)
	assert.Equal(t, "Text content matches query terms", matches[0].Reason)

	t.Run("irrelevant text drops below threshold", func(t *testing.T) {
		other := &corpus.Document{
			Name:        "notes.txt",
			ContentType: corpus.ContentTypeText,
			Text:        "Lunch menu for the week.",
		}
		matches, err := searcher.SearchDocument(context.Background(), other, "security incident")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestSearchDocumentEmptyInputs(t *testing.T) {
	searcher, err := NewDocumentSearcher(corpus.NewMemoryProvider(), fixedResolver())
	require.NoError(t, err)

	matches, err := searcher.SearchDocument(context.Background(), nil, "query")
	require.NoError(t, err)
	assert.Nil(t, matches)

	doc := &corpus.Document{Name: "a.csv", ContentType: corpus.ContentTypeCSV}
	matches, err = searcher.SearchDocument(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Nil(t, matches)
}

func TestBuildEvidence(t *testing.T) {
	doc := &corpus.Document{Name: "assets.csv", ContentType: corpus.ContentTypeCSV}

	t.Run("no matches no evidence", func(t *testing.T) {
		assert.Nil(t, BuildEvidence(doc, "q", nil))
	})

	t.Run("confidence capped", func(t *testing.T) {
		matches := []core.RelevanceMatch{
			{Score: 1.0, Reason: "Matches: alice"},
			{Score: 1.0, Reason: "Matches: laptop"},
		}
		item := BuildEvidence(doc, "laptops for alice", matches)
		require.NotNil(t, item)
		assert.Equal(t, 0.95, item.ConfidenceScore)
		assert.Equal(t, "documents/assets.csv", item.Source)
		assert.Equal(t, core.SourceTypeDocument, item.SourceType)
		assert.Equal(t, "Evidence from assets.csv", item.Title)
		assert.Contains(t, item.Description, "Found 2 relevant records")
		assert.Contains(t, item.Description, "Matches: alice; Matches: laptop")
		assert.Equal(t, 2, item.Data["total_matches"])
		assert.Equal(t, 1.0, item.Data["avg_relevance"])
		assert.Nil(t, item.Timestamp)
	})

	t.Run("confidence scales with average score", func(t *testing.T) {
		matches := []core.RelevanceMatch{{Score: 0.4, Reason: "Matches: alice"}}
		item := BuildEvidence(doc, "q", matches)
		require.NotNil(t, item)
		assert.InDelta(t, 0.7, item.ConfidenceScore, 1e-9)
	})
}
