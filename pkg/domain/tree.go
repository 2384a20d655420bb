package domain

// Structural tree operations.
//
// All mutating operations follow the same contract: the input tree is never
// modified; the returned tree is a fresh deep clone with the change applied.
// Referencing an id that does not exist is a deliberate no-op (the input
// tree is returned unchanged), not an error: a prior step in the same user
// action may have removed the target already.

// Find returns the first node with the given id, searching depth-first from
// the root, or nil.
func Find(tree *Node, id string) *Node {
	var found *Node
	tree.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindParent returns the node whose immediate children contain id, or nil.
// The root has no parent.
func FindParent(tree *Node, id string) *Node {
	var found *Node
	tree.Walk(func(n *Node) bool {
		for _, c := range n.Children {
			if c.ID == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// AddChild clones the tree and appends a new default container node to the
// children of parentID. The new node's id is guaranteed unique within the
// tree. No-op if parentID is not found.
func AddChild(tree *Node, parentID string) *Node {
	if Find(tree, parentID) == nil {
		return tree
	}
	out := tree.Clone()
	child := NewNode(KindContainer)
	for Find(out, child.ID) != nil {
		child = NewNode(KindContainer)
	}
	parent := Find(out, parentID)
	parent.Children = append(parent.Children, child)
	return out
}

// Remove clones the tree and removes the first node matching id. Removal
// stops at the first structural match. Removing the root or a missing id is
// a no-op.
func Remove(tree *Node, id string) *Node {
	if tree.ID == id || FindParent(tree, id) == nil {
		return tree
	}
	out := tree.Clone()
	parent := FindParent(out, id)
	for i, c := range parent.Children {
		if c.ID == id {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	return out
}

// Replace clones the tree and swaps the node matching id for newNode,
// preserving its position among its siblings. If id is the root's id the
// replacement becomes the whole tree. No-op if id is not found.
func Replace(tree *Node, id string, newNode *Node) *Node {
	if newNode == nil {
		return tree
	}
	if tree.ID == id {
		return newNode.Clone()
	}
	if FindParent(tree, id) == nil {
		return tree
	}
	out := tree.Clone()
	parent := FindParent(out, id)
	for i, c := range parent.Children {
		if c.ID == id {
			parent.Children[i] = newNode.Clone()
			break
		}
	}
	return out
}
