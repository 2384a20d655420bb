package history

import "time"

// Snapshot is one frozen state of the configuration tree: its canonical
// encoding plus its place in the version tree. IDs are engine-assigned
// sequence numbers, stable within a session, so visualization and the HTTP
// surface can reference snapshots without holding pointers.
type Snapshot struct {
	ID        int64
	Encoded   string
	Parent    *Snapshot
	Children  []*Snapshot
	CreatedAt time.Time
}

// Walk visits the subtree rooted at s in depth-first pre-order, children in
// creation order. Returning false from fn stops the traversal.
func (s *Snapshot) Walk(fn func(*Snapshot) bool) bool {
	if s == nil {
		return true
	}
	if !fn(s) {
		return false
	}
	for _, c := range s.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the snapshot with the given id within the subtree, or nil.
func (s *Snapshot) Find(id int64) *Snapshot {
	var found *Snapshot
	s.Walk(func(n *Snapshot) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
