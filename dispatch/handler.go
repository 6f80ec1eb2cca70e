package dispatch

import (
	"context"

	"github.com/auditkit/evidenced/core"
)

// Handler retrieves evidence items from a single source for a resolved
// intent. Implementations return an error only for source-level failures
// (missing credentials, network errors, unknown operations); the dispatcher
// converts such errors into zero-confidence error evidence.
type Handler interface {
	// SourceType identifies the source this handler serves.
	SourceType() core.SourceType

	// Handle executes the intent against the source and returns the
	// evidence items it produced. An empty slice with a nil error means
	// the source answered but had nothing relevant.
	Handle(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error)
}

// errorTitles maps a source type to the title and source label used when a
// handler failure is surfaced as evidence.
var errorTitles = map[core.SourceType]struct {
	title  string
	source string
}{
	core.SourceTypeGitHub:   {"GitHub Integration Error", "github"},
	core.SourceTypeJira:     {"JIRA Integration Error", "jira"},
	core.SourceTypeDocument: {"Document Search Error", "documents"},
}

// errorEvidence converts a handler failure into a synthetic evidence item
// so the merged result set stays total.
func errorEvidence(sourceType core.SourceType, err error) core.EvidenceItem {
	meta, ok := errorTitles[sourceType]
	if !ok {
		meta.title = "Integration Error"
		meta.source = string(sourceType)
	}

	return core.EvidenceItem{
		Source:          meta.source,
		SourceType:      sourceType,
		Title:           meta.title,
		Description:     err.Error(),
		Data:            map[string]any{"error": err.Error()},
		ConfidenceScore: 0.0,
	}
}
