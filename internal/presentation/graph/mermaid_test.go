package graph_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/mosaic/internal/presentation/graph"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	g, err := history.New()
	require.NoError(t, err)

	root, err := g.CurrentTree()
	require.NoError(t, err)
	_, err = g.Apply(func(tr *domain.Node) *domain.Node {
		return domain.AddChild(tr, root.ID)
	})
	require.NoError(t, err)

	out := graph.GenerateMermaid(g.Root(), g.Current().ID)

	assert.Contains(t, out, "graph LR")
	// Root rendered as a circle.
	assert.Contains(t, out, fmt.Sprintf("s%d((", g.Root().ID))
	assert.Contains(t, out, fmt.Sprintf("s%d --> s%d", g.Root().ID, g.Current().ID))
	// The undo path and the cursor get styled.
	assert.Contains(t, out, fmt.Sprintf("class s%d onpath;", g.Root().ID))
	assert.Contains(t, out, fmt.Sprintf("class s%d current;", g.Current().ID))
}

func TestGenerateMermaidNilRoot(t *testing.T) {
	assert.Equal(t, "graph LR\n", graph.GenerateMermaid(nil, 0))
}
