// Package tests provides a reusable behavioral contract for RecordStore
// implementations. Adapter test suites call RunRecordStoreContract with a
// fresh store to prove interchangeability.
package tests

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecordStoreContract verifies the RecordStore behavioral contract
// against the given (empty) store.
func RunRecordStoreContract(t *testing.T, store ports.RecordStore) {
	ctx := context.Background()

	records := []domain.Record{
		{"station": "alpha", "level": 3.5},
		{"station": "beta", "level": 7.0},
	}

	t.Run("MissingKeyIsAbsent", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tides", records))

		got, ok, err := store.Get(ctx, "tides")
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, got, 2)
		assert.Equal(t, "alpha", got[0]["station"])
	})

	t.Run("GetReturnsIsolatedCopy", func(t *testing.T) {
		got, ok, err := store.Get(ctx, "tides")
		require.NoError(t, err)
		require.True(t, ok)

		got[0]["station"] = "mutated"

		again, _, err := store.Get(ctx, "tides")
		require.NoError(t, err)
		assert.Equal(t, "alpha", again[0]["station"], "store must not expose internal state by reference")
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tides", []domain.Record{{"station": "gamma"}}))

		got, ok, err := store.Get(ctx, "tides")
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "gamma", got[0]["station"])
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "winds", records))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{"tides", "winds"}, keys)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "tides"))

		_, ok, err := store.Get(ctx, "tides")
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting again is a no-op.
		assert.NoError(t, store.Delete(ctx, "tides"))
	})
}
