package mock

import (
	"context"
	"sync"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/core"
)

// MockSummaryFormatter is a test double for ai.SummaryFormatter.
type MockSummaryFormatter struct {
	// FormatFunc is called by Format if set.
	// If nil, uses the deterministic grouped fallback.
	FormatFunc func(ctx context.Context, evidence []core.EvidenceItem, query string) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockSummaryFormatter creates a mock formatter with default behavior.
func NewMockSummaryFormatter() *MockSummaryFormatter {
	return &MockSummaryFormatter{}
}

// Format returns the grouped fallback summary unless FormatFunc is set.
func (m *MockSummaryFormatter) Format(ctx context.Context, evidence []core.EvidenceItem, query string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.FormatFunc != nil {
		return m.FormatFunc(ctx, evidence, query)
	}
	return ai.FallbackFormat(evidence, query), nil
}

// CallCount returns the number of times Format was called.
func (m *MockSummaryFormatter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockSummaryFormatter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.FormatFunc = nil
}
