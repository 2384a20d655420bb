package domain_test

import (
	"testing"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSettingsDecoding(t *testing.T) {
	node := &domain.Node{
		ID:   "v1",
		Kind: domain.KindView,
		Properties: map[string]any{
			"view":    "barChart",
			"dataKey": "stations",
			"title":   "Tide levels",
			"xColumn": "name",
			"yColumn": "level",
			"filters": []any{
				map[string]any{"column": "level", "op": "greaterThan", "value": 2.0},
			},
			"unknownKey": "ignored",
		},
	}

	settings, err := node.ViewSettings()
	require.NoError(t, err)

	assert.Equal(t, "barChart", settings.View)
	assert.Equal(t, "stations", settings.DataKey)
	assert.Equal(t, "Tide levels", settings.Title)
	assert.Equal(t, "name", settings.XColumn)
	assert.Equal(t, "level", settings.YColumn)
	require.Len(t, settings.Filters, 1)
	assert.Equal(t, domain.Filter{Column: "level", Op: domain.OpGreaterThan, Value: 2.0}, settings.Filters[0])
}

func TestViewSettingsEmptyBag(t *testing.T) {
	node := domain.NewNode(domain.KindView)
	settings, err := node.ViewSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.DataKey)
	assert.Empty(t, settings.Filters)
}

func TestDecodePropertiesNilNode(t *testing.T) {
	var out domain.ViewSettings
	assert.Error(t, domain.DecodeProperties(nil, &out))
}
