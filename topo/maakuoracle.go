package topo

import (
	"github.com/forestrie/go-spvsim/maaku"
)

// MaakuProofLen measures the maaku incremental tree: insert 0..n-1 in order,
// take the depth the target settled at, and convert with the internal-value
// formula. The whole point of the structure is that this depth stays close
// to log of the distance from the head without ever rebuilding, so it is
// scored with the same convention as the breadth first ideal.
//
// Building the tree per query is expensive; this oracle is excluded from the
// per-candidate DP scans and only walked along a chosen path.
func MaakuProofLen(n, to uint64) uint64 {
	tree := &maaku.Tree{}
	for i := uint64(0); i < n; i++ {
		tree.Add(i)
	}
	found := maaku.Find(tree.Root(), to)
	if found == nil {
		panic("topo: element missing from the maaku tree")
	}
	return InternalNodeProofLen(found.Depth)
}
