package history

import (
	"sync"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/schema"
)

// MutationFn transforms a private clone of the current tree. It must be
// side-effect-free; the graph decides whether the result commits. Returning
// nil is treated as a no-op.
type MutationFn func(*domain.Node) *domain.Node

// Graph is the branching history of one dashboard session.
//
// A single mutex guards all cursor movement and commits: callers are
// expected to be cooperatively scheduled UI handlers, the lock only makes
// accidental cross-goroutine use safe, not concurrent editing meaningful.
type Graph struct {
	mu     sync.Mutex
	root   *Snapshot
	cursor *Snapshot
	seq    int64
	size   int
	clock  func() time.Time
	hooks  domain.LifecycleHooks
}

// Option configures a Graph.
type Option func(*Graph)

// WithClock overrides the timestamp source (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(g *Graph) { g.clock = clock }
}

// WithHooks registers lifecycle hooks fired after commits and cursor moves.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Graph) { g.hooks = hooks }
}

// New builds a graph whose root snapshot encodes the default empty
// dashboard: a single container node.
func New(opts ...Option) (*Graph, error) {
	g := &Graph{clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	encoded, err := schema.Encode(domain.NewNode(domain.KindContainer))
	if err != nil {
		return nil, err
	}
	g.root = &Snapshot{
		ID:        g.nextID(),
		Encoded:   encoded,
		CreatedAt: g.clock(),
	}
	g.cursor = g.root
	g.size = 1
	return g, nil
}

func (g *Graph) nextID() int64 {
	g.seq++
	return g.seq
}

// Root returns the root snapshot.
func (g *Graph) Root() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.root
}

// Current returns the cursor snapshot.
func (g *Graph) Current() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cursor
}

// Size returns the number of snapshots in the graph. History is unbounded
// within a session; hosts can watch this to warn about very long sessions.
func (g *Graph) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.size
}

// CurrentTree decodes the cursor snapshot into a fresh, independently owned
// tree.
func (g *Graph) CurrentTree() (*domain.Node, error) {
	g.mu.Lock()
	encoded := g.cursor.Encoded
	g.mu.Unlock()
	return schema.Decode(encoded)
}

// Apply runs fn against a private clone of the current tree and commits the
// result as a new snapshot under the cursor.
//
// If the mutated tree encodes identically to the cursor the mutation was a
// pure no-op: nothing is recorded and the cursor stays put. Otherwise the
// new snapshot is appended as the *last* child of the cursor, which makes
// it the default redo target, and the cursor moves onto it. Prior "future"
// branches are kept.
//
// Returns the current tree either way.
func (g *Graph) Apply(fn MutationFn) (*domain.Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := schema.Decode(g.cursor.Encoded)
	if err != nil {
		return nil, err
	}

	next := fn(current)
	if next == nil {
		return current, nil
	}

	encoded, err := schema.Encode(next)
	if err != nil {
		return nil, err
	}
	if encoded == g.cursor.Encoded {
		return next, nil
	}

	snap := &Snapshot{
		ID:        g.nextID(),
		Encoded:   encoded,
		Parent:    g.cursor,
		CreatedAt: g.clock(),
	}
	g.cursor.Children = append(g.cursor.Children, snap)
	g.cursor = snap
	g.size++

	g.hooks.FireTreeChange(&domain.TreeEvent{
		Timestamp:   snap.CreatedAt,
		SnapshotID:  snap.ID,
		HistorySize: g.size,
	})
	return next, nil
}

// Undo moves the cursor to its parent. Returns false at the root; that is
// not an error.
func (g *Graph) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cursor.Parent == nil {
		return false
	}
	g.cursor = g.cursor.Parent
	g.fireMoveLocked()
	return true
}

// Redo moves the cursor to its last child, the most recently created
// branch. Returns false if the cursor has no children.
func (g *Graph) Redo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.cursor.Children) == 0 {
		return false
	}
	g.cursor = g.cursor.Children[len(g.cursor.Children)-1]
	g.fireMoveLocked()
	return true
}

// CanUndo reports whether the cursor has a parent.
func (g *Graph) CanUndo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cursor.Parent != nil
}

// CanRedo reports whether the cursor has children.
func (g *Graph) CanRedo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cursor.Children) > 0
}

// Jump moves the cursor directly to the snapshot with the given id,
// located by traversal from the root. Returns false if no such snapshot
// exists. Jumping to an abandoned branch and then applying a mutation
// appends a new sibling branch there.
func (g *Graph) Jump(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	target := g.root.Find(id)
	if target == nil {
		return false
	}
	if target == g.cursor {
		return true
	}
	g.cursor = target
	g.fireMoveLocked()
	return true
}

func (g *Graph) fireMoveLocked() {
	g.hooks.FireHistoryMove(&domain.HistoryEvent{
		Timestamp:  g.clock(),
		SnapshotID: g.cursor.ID,
	})
}

// ExportJSON returns the canonical encoding of the current tree.
func (g *Graph) ExportJSON() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cursor.Encoded
}

// ImportJSON decodes a document and feeds it through Apply, so a
// successful import participates in history like any other edit. A decode
// failure leaves cursor and tree untouched and returns the
// *schema.MalformedSnapshotError.
func (g *Graph) ImportJSON(encoded string) error {
	tree, err := schema.Decode(encoded)
	if err != nil {
		return err
	}
	_, err = g.Apply(func(*domain.Node) *domain.Node { return tree })
	return err
}
