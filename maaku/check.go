package maaku

import (
	"errors"
	"fmt"
)

var (
	ErrDepthMismatch  = errors.New("node depth does not match its position")
	ErrDepthExceeded  = errors.New("node depth exceeds the tree max depth")
	ErrRootStale      = errors.New("root does not hold the latest value")
	ErrFixedUnderfull = errors.New("node marked fixed but subtree incomplete")
)

// Check verifies the structural invariants of the tree: every node's Depth
// field matches its actual distance from the root, no node is deeper than
// MaxDepth, a node marked fixed really is complete to MaxDepth, and the root
// holds maxValue, the most recently inserted value.
func (t *Tree) Check(maxValue uint64) error {
	if t.root == nil {
		return nil
	}
	if t.root.Value != maxValue {
		return fmt.Errorf("%w: have %d, want %d", ErrRootStale, t.root.Value, maxValue)
	}
	return t.checkNode(t.root, 0)
}

func (t *Tree) checkNode(node *Node, depth uint64) error {
	if node == nil {
		return nil
	}
	if node.Depth != depth {
		return fmt.Errorf("%w: value %d at depth %d, field says %d",
			ErrDepthMismatch, node.Value, depth, node.Depth)
	}
	if node.Depth > t.maxDepth {
		return fmt.Errorf("%w: value %d at depth %d, max %d",
			ErrDepthExceeded, node.Value, node.Depth, t.maxDepth)
	}
	if node.fixed && !complete(node, t.maxDepth) {
		return fmt.Errorf("%w: value %d at depth %d", ErrFixedUnderfull, node.Value, node.Depth)
	}
	if err := t.checkNode(node.Child[0], depth+1); err != nil {
		return err
	}
	return t.checkNode(node.Child[1], depth+1)
}

// complete reports whether the subtree at node is a perfect binary tree
// reaching maxDepth. Unlike isFixed it never memoizes, so it is safe to use
// as the independent check.
func complete(node *Node, maxDepth uint64) bool {
	if node.Depth == maxDepth {
		return node.Child[0] == nil && node.Child[1] == nil
	}
	if node.Child[0] == nil || node.Child[1] == nil {
		return false
	}
	return complete(node.Child[0], maxDepth) && complete(node.Child[1], maxDepth)
}
