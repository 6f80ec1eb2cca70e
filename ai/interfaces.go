package ai

import (
	"context"

	"github.com/auditkit/evidenced/core"
)

// IntentResolver turns free-text queries into structured intents.
// Implementations must be thread-safe for concurrent use and must degrade to
// a deterministic fallback rather than failing the caller when the backing
// model is unavailable.
type IntentResolver interface {
	// Resolve analyzes a query and extracts its type, parameters, and a
	// natural-language restatement of the intent.
	Resolve(ctx context.Context, query string) (*core.Intent, error)

	// ResolveGitHub analyzes a query known to target the version-control
	// host and selects which read operation to perform, with parameters.
	// The returned intent's Function is one of the core.Function constants.
	ResolveGitHub(ctx context.Context, query string) (*core.Intent, error)
}

// SummaryFormatter renders a set of evidence items into a human-readable
// summary for the stored query result.
// Implementations must be thread-safe for concurrent use.
type SummaryFormatter interface {
	// Format produces the summary text. It must not fail when the backing
	// model is unavailable; a grouped plain-text fallback is returned
	// instead.
	Format(ctx context.Context, evidence []core.EvidenceItem, query string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// IntentResolver returns the query interpretation service.
	IntentResolver() IntentResolver

	// SummaryFormatter returns the evidence summary service.
	SummaryFormatter() SummaryFormatter

	// Close releases resources held by the provider and its services.
	Close() error
}
