package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/corpus"
	"github.com/auditkit/evidenced/relevance"
)

// MaxMatches is the number of matches retained per document after ranking.
const MaxMatches = 20

// DocumentSearcher applies relevance scoring to normalized documents.
type DocumentSearcher struct {
	provider corpus.Provider
	resolver ai.IntentResolver
	logger   *slog.Logger
}

// Option configures a DocumentSearcher.
type Option func(*DocumentSearcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *DocumentSearcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewDocumentSearcher creates a new searcher.
func NewDocumentSearcher(provider corpus.Provider, resolver ai.IntentResolver, opts ...Option) (*DocumentSearcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}

	s := &DocumentSearcher{
		provider: provider,
		resolver: resolver,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Provider returns the corpus provider this searcher scans.
func (s *DocumentSearcher) Provider() corpus.Provider {
	return s.provider
}

// SearchDocument scores one document against the query text and returns the
// surviving matches, sorted by score descending and truncated to MaxMatches.
//
// The query's intent is resolved here, independently of any resolution the
// caller already performed, to obtain the intent restatement and parameters
// the scorer uses as additional signal. Matches are retained only when their
// score exceeds relevance.AdmissionThreshold.
func (s *DocumentSearcher) SearchDocument(ctx context.Context, doc *corpus.Document, queryText string) ([]core.RelevanceMatch, error) {
	if doc == nil || queryText == "" {
		return nil, nil
	}

	intent, err := s.resolver.Resolve(ctx, queryText)
	if err != nil {
		return nil, err
	}
	intentText := strings.ToLower(intent.Text)

	terms := relevance.ExtractTerms(queryText, intentText, intent.Parameters)

	var matches []core.RelevanceMatch
	if doc.Tabular() {
		for _, row := range doc.Rows {
			score := relevance.ScoreRow(row, queryText, intentText, terms)
			if score > relevance.AdmissionThreshold {
				matches = append(matches, core.RelevanceMatch{
					Fields: row,
					Score:  score,
					Reason: relevance.MatchReason(row, queryText, terms),
				})
			}
		}
	} else {
		score := relevance.ScoreText(doc.Text, queryText, terms)
		if score > relevance.AdmissionThreshold {
			matches = append(matches, core.RelevanceMatch{
				Content: doc.Text,
				Score:   score,
				Reason:  "Text content matches query terms",
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}

	s.logger.Debug("document scored", "document", doc.Name, "matches", len(matches), "terms", len(terms))
	return matches, nil
}

// BuildEvidence wraps a document's surviving matches into one evidence
// item. Returns nil when there are no matches: files without matches
// contribute no evidence.
//
// The aggregate confidence maps the average match score into [0.5, 0.95];
// the description summarizes the match count and up to two match reasons.
func BuildEvidence(doc *corpus.Document, queryText string, matches []core.RelevanceMatch) *core.EvidenceItem {
	if len(matches) == 0 {
		return nil
	}

	var total float64
	for _, match := range matches {
		total += match.Score
	}
	avgRelevance := total / float64(len(matches))
	confidence := min(0.95, 0.5+avgRelevance*0.5)

	reasons := make([]string, 0, 2)
	for _, match := range matches[:min(len(matches), 2)] {
		reasons = append(reasons, match.Reason)
	}

	return &core.EvidenceItem{
		Source:      "documents/" + doc.Name,
		SourceType:  core.SourceTypeDocument,
		Title:       "Evidence from " + doc.Name,
		Description: fmt.Sprintf("Found %d relevant records. Top matches: %s", len(matches), strings.Join(reasons, "; ")),
		Data: map[string]any{
			"filename":      doc.Name,
			"matches":       matches,
			"total_matches": len(matches),
			"query":         queryText,
			"avg_relevance": avgRelevance,
			"file_type":     string(doc.ContentType),
		},
		ConfidenceScore: confidence,
	}
}
