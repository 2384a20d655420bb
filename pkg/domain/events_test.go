package domain_test

import (
	"testing"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMergeHooks(t *testing.T) {
	var order []string
	merged := domain.MergeHooks(
		domain.LifecycleHooks{
			OnTreeChange: func(*domain.TreeEvent) { order = append(order, "a") },
		},
		domain.LifecycleHooks{
			OnTreeChange:  func(*domain.TreeEvent) { order = append(order, "b") },
			OnHistoryMove: func(*domain.HistoryEvent) { order = append(order, "move") },
		},
	)

	merged.FireTreeChange(&domain.TreeEvent{})
	merged.FireHistoryMove(&domain.HistoryEvent{})
	// Fetch hooks were set on neither side; firing is safe.
	merged.FireFetchStart(&domain.FetchEvent{})

	assert.Equal(t, []string{"a", "b", "move"}, order)
}

func TestFireOnZeroValueIsSafe(t *testing.T) {
	var hooks domain.LifecycleHooks
	assert.NotPanics(t, func() {
		hooks.FireTreeChange(&domain.TreeEvent{})
		hooks.FireHistoryMove(&domain.HistoryEvent{})
		hooks.FireFetchStart(&domain.FetchEvent{})
		hooks.FireFetchDone(&domain.FetchEvent{})
		hooks.FireFetchError(&domain.FetchEvent{})
	})
}
