// Package domain contains the core types of the Mosaic engine: the widget
// configuration tree, data records, row filters and the lifecycle hook
// contract used for observability.
//
// The tree is a strict ownership hierarchy: every node has exactly one
// parent, children are ordered, and ids are unique within a tree. All
// structural operations work on deep clones so that a tree handed to the
// history layer is frozen and free of aliasing.
package domain
