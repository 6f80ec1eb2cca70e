package mock

import (
	"context"
	"sync"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/core"
)

// MockIntentResolver is a test double for ai.IntentResolver.
// It allows custom behavior injection via function fields.
type MockIntentResolver struct {
	// ResolveFunc is called by Resolve if set.
	// If nil, uses the deterministic keyword fallback.
	ResolveFunc func(ctx context.Context, query string) (*core.Intent, error)

	// ResolveGitHubFunc is called by ResolveGitHub if set.
	// If nil, uses the deterministic keyword fallback.
	ResolveGitHubFunc func(ctx context.Context, query string) (*core.Intent, error)

	mu         sync.Mutex
	callCounts map[string]int
}

// NewMockIntentResolver creates a mock resolver with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockIntentResolver() *MockIntentResolver {
	return &MockIntentResolver{callCounts: make(map[string]int)}
}

// Resolve returns the keyword fallback analysis unless ResolveFunc is set.
func (m *MockIntentResolver) Resolve(ctx context.Context, query string) (*core.Intent, error) {
	m.count("Resolve")
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, query)
	}
	return ai.FallbackResolve(query), nil
}

// ResolveGitHub returns the keyword fallback selection unless
// ResolveGitHubFunc is set.
func (m *MockIntentResolver) ResolveGitHub(ctx context.Context, query string) (*core.Intent, error) {
	m.count("ResolveGitHub")
	if m.ResolveGitHubFunc != nil {
		return m.ResolveGitHubFunc(ctx, query)
	}
	return ai.FallbackResolveGitHub(query), nil
}

// CallCount returns how many times the named method was called.
func (m *MockIntentResolver) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCounts[method]
}

// Reset clears call counts and custom functions.
func (m *MockIntentResolver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCounts = make(map[string]int)
	m.ResolveFunc = nil
	m.ResolveGitHubFunc = nil
}

func (m *MockIntentResolver) count(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCounts[method]++
}
