package domain

import (
	"fmt"
	"sync/atomic"
)

// Kind constants define the structural role of a widget node.
const (
	// KindContainer is a generic layout box. New nodes default to this.
	KindContainer = "container"
	// KindRow lays its children out horizontally.
	KindRow = "row"
	// KindColumn lays its children out vertically.
	KindColumn = "column"

	// KindView is a data-bound leaf. The view subtype (table, bar chart,
	// map, ...) and all of its behavior live in Properties.
	KindView = "view"
)

// Node represents one widget in the configuration tree.
//
// Properties is an open key/value bag: the engine does not schema-check it
// beyond what individual consumers decode (see DecodeProperties). Children
// are exclusively owned by their parent; the same *Node must never appear
// in two trees.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`

	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

var idCounter atomic.Int64

// NewID returns a widget id unique within this process.
func NewID() string {
	return fmt.Sprintf("w%06d", idCounter.Add(1))
}

// NewNode constructs a widget of the given kind with a fresh id and empty
// default properties.
func NewNode(kind string) *Node {
	return &Node{
		ID:         NewID(),
		Kind:       kind,
		Properties: map[string]any{},
	}
}

// Clone returns a deep copy of the node: properties (including nested maps
// and slices) and the whole child subtree are copied, so the result shares
// no mutable state with the receiver.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:   n.ID,
		Kind: n.Kind,
	}
	if n.Properties != nil {
		out.Properties = make(map[string]any, len(n.Properties))
		for k, v := range n.Properties {
			out.Properties[k] = cloneValue(v)
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// Scalars (string, float64, bool, nil, json.Number) are immutable.
		return v
	}
}

// Walk visits the subtree rooted at n in depth-first pre-order. Returning
// false from fn stops the traversal.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
