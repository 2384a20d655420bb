package tui_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/mosaic/internal/presentation/tui"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree(t *testing.T) {
	tree := &domain.Node{
		ID:   "root",
		Kind: domain.KindContainer,
		Children: []*domain.Node{
			{ID: "v1", Kind: domain.KindView, Properties: map[string]any{"view": "table"}},
		},
	}

	out := tui.RenderTree(tree)
	assert.Contains(t, out, "root")
	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "(table)")
	// Children are indented under their parent.
	assert.Contains(t, out, "\n  ")
}

func TestRenderTreeNil(t *testing.T) {
	assert.Empty(t, tui.RenderTree(nil))
}

func TestRenderHistoryMarksCursor(t *testing.T) {
	g, err := history.New()
	require.NoError(t, err)
	root, err := g.CurrentTree()
	require.NoError(t, err)
	_, err = g.Apply(func(tr *domain.Node) *domain.Node {
		return domain.AddChild(tr, root.ID)
	})
	require.NoError(t, err)

	out := tui.RenderHistory(g.Root(), g.Current().ID)
	assert.Contains(t, out, fmt.Sprintf("s%d", g.Root().ID))
	assert.Contains(t, out, fmt.Sprintf("s%d *", g.Current().ID))
}
