package corpus

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryProvider is an in-memory Provider for tests and for callers that
// receive pre-normalized documents from an external parser.
type MemoryProvider struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

var _ Provider = (*MemoryProvider)(nil)

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{docs: make(map[string]*Document)}
}

// Add registers a document under its Name, replacing any previous document
// with the same name.
func (p *MemoryProvider) Add(doc *Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs[doc.Name] = doc
}

// List returns the registered document names, sorted.
func (p *MemoryProvider) List(ctx context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.docs))
	for name := range p.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the document registered under name.
func (p *MemoryProvider) Load(ctx context.Context, name string) (*Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return doc, nil
}
