package ports

import (
	"context"

	"github.com/aretw0/mosaic/pkg/domain"
)

// RecordFetcher retrieves the record set for a data-source key from
// upstream. Implementations should return *domain.FetchError for
// non-success responses so callers can surface the status per key.
type RecordFetcher interface {
	Fetch(ctx context.Context, key string) ([]domain.Record, error)
}

// FetcherFunc adapts a function to the RecordFetcher interface.
type FetcherFunc func(ctx context.Context, key string) ([]domain.Record, error)

// Fetch implements RecordFetcher.
func (f FetcherFunc) Fetch(ctx context.Context, key string) ([]domain.Record, error) {
	return f(ctx, key)
}
