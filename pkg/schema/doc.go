// Package schema implements the canonical textual form of a widget
// configuration tree.
//
// Encoding is deterministic: two structurally identical trees always encode
// to byte-identical strings. History deduplication relies on this, so the
// encoder fixes the field order per node and lets encoding/json's sorted
// map-key emission canonicalize property bags.
package schema
