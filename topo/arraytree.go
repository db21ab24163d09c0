package topo

import (
	"github.com/forestrie/go-spvsim/maaku"
)

// interior marks nodes of the ephemeral tree that carry structure only.
// Element indexes are always < n so this value can never collide.
const interior = ^uint64(0)

// ArrayProofLen answers by actually building the external-node tree over
// [0, n) and measuring the depth of to, the way the exploratory code did.
// With external values the proof length is exactly the depth.
//
// It is almost RFC6962ProofLen, with one deliberate difference: the builder
// always hangs a singleton range below a fresh internal node, so a trailing
// odd element costs one more hash than the closed form gives it (for n = 5,
// element 4 costs 2 rather than 1). Both conventions appear in the
// literature; keeping the built tree lets them be compared directly.
func ArrayProofLen(n, to uint64) uint64 {
	root := &maaku.Node{Value: interior}
	buildArrayTree(root, 0, n)

	found := maaku.Find(root, to)
	if found == nil {
		panic("topo: element missing from the array tree")
	}
	return found.Depth
}

func buildArrayTree(n *maaku.Node, start, end uint64) {
	if end-start == 1 {
		n.Child[0] = &maaku.Node{Value: start, Depth: n.Depth + 1}
		return
	}
	if end-start == 2 {
		n.Child[0] = &maaku.Node{Value: start, Depth: n.Depth + 1}
		n.Child[1] = &maaku.Node{Value: start + 1, Depth: n.Depth + 1}
		return
	}
	split := splitSize(end - start)
	n.Child[0] = &maaku.Node{Value: interior, Depth: n.Depth + 1}
	buildArrayTree(n.Child[0], start, start+split)
	n.Child[1] = &maaku.Node{Value: interior, Depth: n.Depth + 1}
	buildArrayTree(n.Child[1], start+split, end)
}
