package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/auditkit/evidenced/core"
)

// Dispatcher fans a resolved intent out to its target sources and merges
// the evidence. Handlers are consulted in registration order and results
// are concatenated in that same order regardless of completion timing.
type Dispatcher struct {
	handlers []Handler
	byType   map[core.SourceType]Handler
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithPoolSize enables concurrent fan-out using a worker pool of the given
// size. Without this option handlers run sequentially.
func WithPoolSize(size int) Option {
	return func(d *Dispatcher) error {
		if size < 1 {
			size = 1
		}
		if d.pool != nil {
			d.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		d.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "dispatcher")
		return nil
	}
}

// NewDispatcher creates a dispatcher over the given handlers. Handler order
// is significant: it fixes the merge order of mixed-source results.
func NewDispatcher(handlers []Handler, opts ...Option) (*Dispatcher, error) {
	if len(handlers) == 0 {
		return nil, ErrHandlerRequired
	}

	d := &Dispatcher{
		handlers: handlers,
		byType:   make(map[core.SourceType]Handler, len(handlers)),
		logger:   slog.Default().With("component", "dispatcher"),
	}
	for _, h := range handlers {
		d.byType[h.SourceType()] = h
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			d.Release()
			return nil, err
		}
	}

	return d, nil
}

// Release frees the worker pool if one was configured.
func (d *Dispatcher) Release() {
	if d.pool != nil {
		d.pool.Release()
		d.pool = nil
	}
}

// Dispatch routes the intent to the sources selected by queryType and
// returns the merged evidence. An empty queryType falls back to the
// intent's own query type; anything that does not name a single source
// fans out to every registered handler.
//
// Dispatch is total: source failures are folded into the result as
// zero-confidence error evidence, never returned as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, queryType string, intent *core.Intent, filters map[string]any) []core.EvidenceItem {
	if queryType == "" {
		queryType = intent.QueryType
	}

	merged := mergeFilters(intent, filters)

	if h, ok := d.byType[core.SourceType(queryType)]; ok {
		d.logger.Debug("dispatching to single source", "query_type", queryType)
		return d.run(ctx, h, merged)
	}

	d.logger.Debug("dispatching to all sources", "query_type", queryType, "sources", len(d.handlers))

	results := make([][]core.EvidenceItem, len(d.handlers))
	if d.pool != nil && len(d.handlers) > 1 {
		var wg sync.WaitGroup
		for i, h := range d.handlers {
			i, h := i, h
			wg.Add(1)
			task := func() {
				defer wg.Done()
				results[i] = d.run(ctx, h, merged)
			}
			if err := d.pool.Submit(task); err != nil {
				// Pool saturated or released; fall back to inline.
				task()
			}
		}
		wg.Wait()
	} else {
		for i, h := range d.handlers {
			results[i] = d.run(ctx, h, merged)
		}
	}

	var evidence []core.EvidenceItem
	for _, r := range results {
		evidence = append(evidence, r...)
	}
	return evidence
}

func (d *Dispatcher) run(ctx context.Context, h Handler, intent *core.Intent) []core.EvidenceItem {
	items, err := h.Handle(ctx, intent)
	if err != nil {
		d.logger.Warn("source handler failed", "source", h.SourceType(), "error", err)
		return []core.EvidenceItem{errorEvidence(h.SourceType(), err)}
	}
	return items
}

// mergeFilters returns a copy of the intent whose parameters have the
// explicit filters overlaid. Explicit filters win over resolver-derived
// parameters of the same name.
func mergeFilters(intent *core.Intent, filters map[string]any) *core.Intent {
	if len(filters) == 0 {
		return intent
	}

	merged := *intent
	merged.Parameters = make(map[string]any, len(intent.Parameters)+len(filters))
	for k, v := range intent.Parameters {
		merged.Parameters[k] = v
	}
	for k, v := range filters {
		merged.Parameters[k] = v
	}
	return &merged
}
