package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/corpus"
	"github.com/auditkit/evidenced/search"
)

// DocumentHandler answers intents by scanning the document corpus with the
// relevance scorer.
type DocumentHandler struct {
	searcher *search.DocumentSearcher
	logger   *slog.Logger
}

// NewDocumentHandler creates a handler backed by the given searcher.
func NewDocumentHandler(searcher *search.DocumentSearcher, logger *slog.Logger) *DocumentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{
		searcher: searcher,
		logger:   logger.With("component", "document_handler"),
	}
}

// SourceType implements Handler.
func (h *DocumentHandler) SourceType() core.SourceType {
	return core.SourceTypeDocument
}

// Handle implements Handler. Every listed document is scanned; files that
// fail to load or score are logged and skipped rather than failing the
// whole scan. When no document yields an admissible match, a single
// zero-confidence "No Matches Found" item records the files searched.
func (h *DocumentHandler) Handle(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	if h.searcher == nil {
		return nil, fmt.Errorf("documents: %w", ErrClientNotConfigured)
	}

	queryText := strings.ToLower(intent.Text)
	provider := h.searcher.Provider()

	names, err := provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Files are scanned concurrently on the shared worker pool; each slot
	// holds at most one evidence item, nil when the file failed or had no
	// admissible matches.
	slots := make([]*core.EvidenceItem, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = h.scanFile(ctx, provider, name, queryText)
		}
		if err := ants.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	items := make([]core.EvidenceItem, 0, len(names))
	for _, item := range slots {
		if item != nil {
			items = append(items, *item)
		}
	}

	if len(items) == 0 {
		return []core.EvidenceItem{{
			Source:          "documents",
			SourceType:      core.SourceTypeDocument,
			Title:           "No Matches Found",
			Description:     fmt.Sprintf("No documents found matching query: %s", queryText),
			Data:            map[string]any{"query": queryText, "searched_files": names},
			ConfidenceScore: 0.0,
		}}, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ConfidenceScore > items[j].ConfidenceScore
	})

	h.logger.Debug("document scan complete", "files", len(names), "items", len(items))
	return items, nil
}

// scanFile loads and scores one document. Failures are logged and swallowed
// so one bad upload cannot fail the whole scan.
func (h *DocumentHandler) scanFile(ctx context.Context, provider corpus.Provider, name, queryText string) *core.EvidenceItem {
	doc, err := provider.Load(ctx, name)
	if err != nil {
		h.logger.Warn("skipping unreadable document", "file", name, "error", err)
		return nil
	}

	matches, err := h.searcher.SearchDocument(ctx, doc, queryText)
	if err != nil {
		h.logger.Warn("skipping document after search failure", "file", name, "error", err)
		return nil
	}

	return search.BuildEvidence(doc, queryText, matches)
}
