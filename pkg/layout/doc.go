// Package layout positions history snapshots for visualization.
//
// The algorithm is a simplified Reingold-Tilford: depth maps to a fixed x
// column, leaf nodes claim a fixed vertical span, internal nodes claim the
// sum of their children's spans and sit at the vertical midpoint of their
// first and last child. Sibling subtrees therefore never overlap
// vertically; the layout does not try to minimize width or balance uneven
// shapes, which is fine for the shallow, edit-rate-bounded trees a session
// produces.
package layout
