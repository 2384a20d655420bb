package schema

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/mosaic/pkg/domain"
)

// document is the wire shape of one node. Field order is fixed and no field
// is ever omitted, so structurally identical trees marshal byte-identically
// (encoding/json emits map keys in sorted order).
type document struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Properties map[string]any `json:"properties"`
	Children   []*document    `json:"children"`
}

// Encode serializes a tree to its canonical textual form.
func Encode(tree *domain.Node) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("encode: nil tree")
	}
	doc, err := toDocument(tree, "root")
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(data), nil
}

func toDocument(n *domain.Node, path string) (*document, error) {
	if n.ID == "" {
		return nil, malformed(path, "missing required field \"id\"")
	}
	if n.Kind == "" {
		return nil, malformed(path, "missing required field \"kind\"")
	}
	doc := &document{
		ID:         n.ID,
		Kind:       n.Kind,
		Properties: n.Properties,
		Children:   []*document{},
	}
	if doc.Properties == nil {
		doc.Properties = map[string]any{}
	}
	for i, c := range n.Children {
		child, err := toDocument(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, child)
	}
	return doc, nil
}

// Decode parses an encoded tree, validating that every node carries its
// required id and kind and that ids are unique. On failure it returns a
// *MalformedSnapshotError and the input is left untouched for the caller.
//
// Numeric property values decode to float64 per encoding/json.
func Decode(encoded string) (*domain.Node, error) {
	var raw any
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return nil, malformed("", "invalid JSON: %v", err)
	}
	root, err := decodeNode(raw, "root")
	if err != nil {
		return nil, err
	}
	if err := checkUniqueIDs(root); err != nil {
		return nil, err
	}
	return root, nil
}

func decodeNode(raw any, path string) (*domain.Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, "expected object, got %T", raw)
	}

	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return nil, malformed(path, "missing required field \"id\"")
	}
	kind, ok := obj["kind"].(string)
	if !ok || kind == "" {
		return nil, malformed(path, "missing required field \"kind\"")
	}

	node := &domain.Node{
		ID:         id,
		Kind:       kind,
		Properties: map[string]any{},
	}

	if rawProps, present := obj["properties"]; present && rawProps != nil {
		props, ok := rawProps.(map[string]any)
		if !ok {
			return nil, malformed(path, "field \"properties\" must be an object, got %T", rawProps)
		}
		node.Properties = props
	}

	if rawChildren, present := obj["children"]; present && rawChildren != nil {
		children, ok := rawChildren.([]any)
		if !ok {
			return nil, malformed(path, "field \"children\" must be an array, got %T", rawChildren)
		}
		for i, rawChild := range children {
			child, err := decodeNode(rawChild, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}

	return node, nil
}

func checkUniqueIDs(root *domain.Node) error {
	seen := make(map[string]bool)
	var dup string
	root.Walk(func(n *domain.Node) bool {
		if seen[n.ID] {
			dup = n.ID
			return false
		}
		seen[n.ID] = true
		return true
	})
	if dup != "" {
		return malformed("", "duplicate node id %q", dup)
	}
	return nil
}
