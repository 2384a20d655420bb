package mosaic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/mosaic/pkg/cache"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
	"github.com/aretw0/mosaic/pkg/layout"
	"github.com/aretw0/mosaic/pkg/ports"

	memoryAdapter "github.com/aretw0/mosaic/pkg/adapters/memory"
)

// Engine is the high-level entry point for the Mosaic library. It owns one
// dashboard session: the history graph and the record cache.
type Engine struct {
	graph   *history.Graph
	cache   *cache.Cache
	fetcher ports.RecordFetcher
	store   ports.RecordStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	clock   func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHooks registers observability hooks. They fire synchronously after
// the corresponding state change is visible.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithFetcher injects the upstream record source for data-bound views.
// Without a fetcher, Fetch returns domain.ErrNoFetcher.
func WithFetcher(fetcher ports.RecordFetcher) Option {
	return func(e *Engine) { e.fetcher = fetcher }
}

// WithStore injects a custom cache backing store. Defaults to the
// in-memory adapter.
func WithStore(store ports.RecordStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithClock overrides the timestamp source (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// New initializes a Mosaic engine with an empty default dashboard (a single
// container node) as the history root.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{clock: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	// Ensure logger is initialized so nothing downstream sees nil.
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if e.store == nil {
		e.store = memoryAdapter.NewStore()
	}

	graph, err := history.New(
		history.WithClock(e.clock),
		history.WithHooks(e.hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	e.graph = graph

	e.cache = cache.New(e.fetcher, e.store,
		cache.WithHooks(e.hooks),
		cache.WithLogger(e.logger),
		cache.WithClock(e.clock),
	)
	return e, nil
}

// CurrentTree returns a fresh, independently owned copy of the current
// configuration tree.
func (e *Engine) CurrentTree() (*domain.Node, error) {
	return e.graph.CurrentTree()
}

// Apply runs a pure mutation function against the current tree and commits
// the result to history unless it is a no-op. See history.Graph.Apply.
func (e *Engine) Apply(fn history.MutationFn) (*domain.Node, error) {
	return e.graph.Apply(fn)
}

// AddChild appends a new default container under parentID. Missing parent
// is a silent no-op.
func (e *Engine) AddChild(parentID string) (*domain.Node, error) {
	return e.graph.Apply(func(tree *domain.Node) *domain.Node {
		return domain.AddChild(tree, parentID)
	})
}

// RemoveNode removes the node with the given id. Missing id, or the root
// id, is a silent no-op.
func (e *Engine) RemoveNode(id string) (*domain.Node, error) {
	return e.graph.Apply(func(tree *domain.Node) *domain.Node {
		return domain.Remove(tree, id)
	})
}

// ReplaceNode swaps the node with the given id for newNode, preserving its
// position. Missing id is a silent no-op.
func (e *Engine) ReplaceNode(id string, newNode *domain.Node) (*domain.Node, error) {
	return e.graph.Apply(func(tree *domain.Node) *domain.Node {
		return domain.Replace(tree, id, newNode)
	})
}

// Undo moves to the previous state. Returns false at the history root.
func (e *Engine) Undo() bool { return e.graph.Undo() }

// Redo moves to the most recently created branch under the cursor.
func (e *Engine) Redo() bool { return e.graph.Redo() }

// CanUndo reports whether Undo would move the cursor.
func (e *Engine) CanUndo() bool { return e.graph.CanUndo() }

// CanRedo reports whether Redo would move the cursor.
func (e *Engine) CanRedo() bool { return e.graph.CanRedo() }

// Jump moves the cursor to any snapshot ever recorded in this session.
func (e *Engine) Jump(snapshotID int64) bool { return e.graph.Jump(snapshotID) }

// History exposes the underlying history graph for visualization.
func (e *Engine) History() *history.Graph { return e.graph }

// Layout computes screen positions and the hit-test table for the history
// visualization.
func (e *Engine) Layout() layout.Result {
	return layout.Compute(e.graph.Root(), e.graph.Current().ID)
}

// ExportJSON returns the canonical encoding of the current tree.
func (e *Engine) ExportJSON() string { return e.graph.ExportJSON() }

// ImportJSON loads an exported document as a new edit. On decode failure
// the session state is untouched and the *schema.MalformedSnapshotError is
// returned.
func (e *Engine) ImportJSON(encoded string) error { return e.graph.ImportJSON(encoded) }

// Fetch resolves the record set for a data-source key through the
// coalescing cache.
func (e *Engine) Fetch(ctx context.Context, key string) ([]domain.Record, error) {
	return e.cache.Fetch(ctx, key)
}

// Records returns cached records for a key without triggering a fetch.
func (e *Engine) Records(key string) ([]domain.Record, bool) {
	return e.cache.Lookup(key)
}

// Pending reports whether a fetch for the key is in flight.
func (e *Engine) Pending(key string) bool { return e.cache.Pending(key) }

// ApplyFilters filters records with ordered AND semantics; evaluation
// failures exclude the row rather than erroring.
func (e *Engine) ApplyFilters(records []domain.Record, filters []domain.Filter) []domain.Record {
	return domain.ApplyFilters(records, filters)
}

// RecordsForView resolves the data behind one view node: it decodes the
// node's view settings, fetches its data key and applies its configured
// filters.
func (e *Engine) RecordsForView(ctx context.Context, nodeID string) ([]domain.Record, error) {
	tree, err := e.CurrentTree()
	if err != nil {
		return nil, err
	}
	node := domain.Find(tree, nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, nodeID)
	}
	if node.Kind != domain.KindView {
		return nil, fmt.Errorf("%w: %s is a %s", domain.ErrNotAView, nodeID, node.Kind)
	}

	settings, err := node.ViewSettings()
	if err != nil {
		return nil, err
	}
	if settings.DataKey == "" {
		return nil, fmt.Errorf("%w: %s has no dataKey", domain.ErrNotAView, nodeID)
	}

	records, err := e.Fetch(ctx, settings.DataKey)
	if err != nil {
		return nil, err
	}
	return domain.ApplyFilters(records, settings.Filters), nil
}
