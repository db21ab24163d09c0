package maaku

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the tree for inspection. Fixed subtrees are marked so the
// incremental behaviour is visible at a glance.
func (t *Tree) Dump() treeprint.Tree {
	tree := treeprint.New()
	if t.root == nil {
		return tree
	}
	tree.SetValue(nodeLabel(t.root))
	addBranches(tree, t.root)
	return tree
}

func nodeLabel(n *Node) string {
	if n.fixed {
		return fmt.Sprintf("%d (d=%d, fixed)", n.Value, n.Depth)
	}
	return fmt.Sprintf("%d (d=%d)", n.Value, n.Depth)
}

func addBranches(tree treeprint.Tree, n *Node) {
	for _, child := range n.Child {
		if child == nil {
			continue
		}
		branch := tree.AddBranch(nodeLabel(child))
		addBranches(branch, child)
	}
}
