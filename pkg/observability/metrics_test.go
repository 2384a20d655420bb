package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/observability"
)

func TestHooksFeedCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.New(reg)
	hooks := m.Hooks()

	hooks.FireTreeChange(&domain.TreeEvent{HistorySize: 4})
	hooks.FireHistoryMove(&domain.HistoryEvent{})
	hooks.FireHistoryMove(&domain.HistoryEvent{})
	hooks.FireFetchStart(&domain.FetchEvent{Key: "stations"})
	hooks.FireFetchDone(&domain.FetchEvent{Key: "stations", Duration: 120 * time.Millisecond})
	hooks.FireFetchStart(&domain.FetchEvent{Key: "tides"})
	hooks.FireFetchError(&domain.FetchEvent{Key: "tides", Err: errors.New("boom")})

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["mosaic_fetch_duration_seconds"])

	counters := map[string]float64{
		"mosaic_edits_total":         1,
		"mosaic_history_snapshots":   4,
		"mosaic_history_moves_total": 2,
		"mosaic_fetches_total":       2,
		"mosaic_fetch_errors_total":  1,
	}
	for name, want := range counters {
		got, err := testutil.GatherAndCount(reg, name)
		require.NoError(t, err)
		require.Equal(t, 1, got, name)
		assert.Equal(t, want, gatherValue(t, reg, name), name)
	}
}

func TestEngineDrivesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.New(reg)

	engine, err := mosaic.New(mosaic.WithHooks(m.Hooks()))
	require.NoError(t, err)

	root, err := engine.CurrentTree()
	require.NoError(t, err)
	_, err = engine.AddChild(root.ID)
	require.NoError(t, err)
	engine.Undo()

	assert.Equal(t, 1.0, gatherValue(t, reg, "mosaic_edits_total"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "mosaic_history_snapshots"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "mosaic_history_moves_total"))
}

func gatherValue(t *testing.T, reg prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		metric := f.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
		if g := metric.GetGauge(); g != nil {
			return g.GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
