package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for corpus documents.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceType identifies the backing system an evidence item came from.
type SourceType string

const (
	// SourceTypeGitHub is evidence from the version-control host.
	SourceTypeGitHub SourceType = "github"
	// SourceTypeJira is evidence from the issue tracker.
	SourceTypeJira SourceType = "jira"
	// SourceTypeDocument is evidence from uploaded documents.
	SourceTypeDocument SourceType = "document"
)

// Query types accepted from callers and returned by the intent resolver.
// The source types double as concrete query types; QueryTypeMixed fans out
// to every source.
const (
	QueryTypeGitHub   = "github"
	QueryTypeJira     = "jira"
	QueryTypeDocument = "document"
	QueryTypeMixed    = "mixed"
)

// Read operations the github source handler can be asked to perform. The
// intent resolver emits one of these as Intent.Function.
const (
	FunctionMergedPRsLastNDays  = "get_merged_prs_last_n_days"
	FunctionPRsWaitingForReview = "get_prs_waiting_for_review"
	FunctionPRDetails           = "get_pr_details"
	FunctionPRReviews           = "get_pr_reviews"
	FunctionListPRs             = "get_prs"
)

// EvidenceItem is one normalized unit of proof returned by a source handler.
// Items are created during dispatch and immutable thereafter; they are only
// persisted inside a QueryResult.
type EvidenceItem struct {
	Source          string         `json:"source"`
	SourceType      SourceType     `json:"source_type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Data            map[string]any `json:"data"`
	ConfidenceScore float64        `json:"confidence_score"`
	Timestamp       *time.Time     `json:"timestamp,omitempty"` // absent for document matches
}

// RelevanceMatch is a candidate document record annotated by the scorer.
// Tabular matches carry the original row in Fields; text matches carry the
// whole blob in Content. Matches live only inside an EvidenceItem's data.
type RelevanceMatch struct {
	Fields  map[string]any `json:"fields,omitempty"`
	Content string         `json:"content,omitempty"`
	Score   float64        `json:"relevance_score"`
	Reason  string         `json:"match_reason"`
}

// Intent is the structured interpretation of a free-text query.
type Intent struct {
	QueryType           string         `json:"query_type,omitempty"`
	Function            string         `json:"function,omitempty"`
	Parameters          map[string]any `json:"parameters"`
	Text                string         `json:"intent"`
	Confidence          float64        `json:"confidence"`
	ClarifyingQuestions []string       `json:"clarifying_questions,omitempty"`
	Fallback            bool           `json:"fallback,omitempty"`
}

// StringParameter returns the named parameter as a string, with ok reporting
// whether it was present and string-valued.
func (in *Intent) StringParameter(name string) (string, bool) {
	if in.Parameters == nil {
		return "", false
	}
	v, ok := in.Parameters[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntParameter returns the named parameter as an int, converting from the
// numeric types JSON decoding produces.
func (in *Intent) IntParameter(name string) (int, bool) {
	if in.Parameters == nil {
		return 0, false
	}
	switch v := in.Parameters[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		// The keyword fallback resolver carries digits as strings.
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// QueryResult is the durable record of one processed query.
// At most one QueryResult exists per QueryID; storing again under the same
// id overwrites the record.
type QueryResult struct {
	QueryID       string         `json:"query_id"`
	Query         string         `json:"query"`
	Evidence      []EvidenceItem `json:"evidence"`
	Summary       string         `json:"summary"`
	CreatedAt     time.Time      `json:"created_at"`
	EvidenceCount int            `json:"evidence_count"`
}
