package domain_test

import (
	"testing"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *domain.Node {
	return &domain.Node{
		ID:   "root",
		Kind: domain.KindContainer,
		Children: []*domain.Node{
			{ID: "a", Kind: domain.KindRow, Children: []*domain.Node{
				{ID: "a1", Kind: domain.KindView, Properties: map[string]any{"view": "table"}},
			}},
			{ID: "b", Kind: domain.KindColumn},
		},
	}
}

func TestFind(t *testing.T) {
	tree := buildTree()

	assert.Equal(t, tree, domain.Find(tree, "root"))
	require.NotNil(t, domain.Find(tree, "a1"))
	assert.Equal(t, domain.KindView, domain.Find(tree, "a1").Kind)
	assert.Nil(t, domain.Find(tree, "missing"))
}

func TestFindParent(t *testing.T) {
	tree := buildTree()

	parent := domain.FindParent(tree, "a1")
	require.NotNil(t, parent)
	assert.Equal(t, "a", parent.ID)

	// The root has no parent.
	assert.Nil(t, domain.FindParent(tree, "root"))
	assert.Nil(t, domain.FindParent(tree, "missing"))
}

func TestAddChild(t *testing.T) {
	tree := buildTree()

	out := domain.AddChild(tree, "b")
	require.NotSame(t, tree, out)

	b := domain.Find(out, "b")
	require.Len(t, b.Children, 1)
	assert.Equal(t, domain.KindContainer, b.Children[0].Kind)
	assert.NotEmpty(t, b.Children[0].ID)

	// Input tree untouched.
	assert.Empty(t, domain.Find(tree, "b").Children)

	t.Run("MissingParentIsNoOp", func(t *testing.T) {
		same := domain.AddChild(tree, "missing")
		assert.Same(t, tree, same)
	})
}

func TestRemove(t *testing.T) {
	tree := buildTree()

	out := domain.Remove(tree, "a1")
	assert.Nil(t, domain.Find(out, "a1"))
	assert.Empty(t, domain.Find(out, "a").Children)

	// Input tree untouched.
	assert.NotNil(t, domain.Find(tree, "a1"))

	t.Run("MissingIDIsNoOp", func(t *testing.T) {
		assert.Same(t, tree, domain.Remove(tree, "missing"))
	})

	t.Run("RootIsNoOp", func(t *testing.T) {
		assert.Same(t, tree, domain.Remove(tree, "root"))
	})
}

func TestReplace(t *testing.T) {
	tree := buildTree()

	replacement := &domain.Node{ID: "a1", Kind: domain.KindView, Properties: map[string]any{"view": "barChart"}}
	out := domain.Replace(tree, "a1", replacement)

	got := domain.Find(out, "a1")
	require.NotNil(t, got)
	assert.Equal(t, "barChart", got.Properties["view"])
	// Position among siblings preserved.
	assert.Equal(t, "a1", domain.Find(out, "a").Children[0].ID)

	// Input tree untouched.
	assert.Equal(t, "table", domain.Find(tree, "a1").Properties["view"])

	t.Run("ReplaceRootSwapsWholeTree", func(t *testing.T) {
		newRoot := &domain.Node{ID: "fresh", Kind: domain.KindContainer}
		out := domain.Replace(tree, "root", newRoot)
		assert.Equal(t, "fresh", out.ID)
		assert.Empty(t, out.Children)
	})

	t.Run("MissingIDIsNoOp", func(t *testing.T) {
		assert.Same(t, tree, domain.Replace(tree, "missing", replacement))
	})
}

func TestCloneIsDeep(t *testing.T) {
	tree := buildTree()
	tree.Properties = map[string]any{
		"nested": map[string]any{"k": "v"},
		"list":   []any{1.0, 2.0},
	}

	clone := tree.Clone()
	clone.Properties["nested"].(map[string]any)["k"] = "mutated"
	clone.Properties["list"].([]any)[0] = 99.0
	clone.Children[0].ID = "mutated"

	assert.Equal(t, "v", tree.Properties["nested"].(map[string]any)["k"])
	assert.Equal(t, 1.0, tree.Properties["list"].([]any)[0])
	assert.Equal(t, "a", tree.Children[0].ID)
}
