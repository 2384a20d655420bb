package ports

import (
	"context"

	"github.com/aretw0/mosaic/pkg/domain"
)

// RecordStore is the backing store for fetched record sets, keyed by
// data-source identifier. The cache core owns the loading-state machine;
// the store only holds present values.
//
// Retention is a store concern: the memory adapter keeps entries for the
// life of the process, the redis adapter can expire them via TTL.
type RecordStore interface {
	// Get returns the records for a key and whether the key is present.
	Get(ctx context.Context, key string) ([]domain.Record, bool, error)

	// Set stores the records for a key, replacing any previous value.
	Set(ctx context.Context, key string, records []domain.Record) error

	// Delete removes the entry for a key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Keys lists the keys currently present.
	Keys(ctx context.Context) ([]string, error)
}
