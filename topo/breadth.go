package topo

// Trees with internal values look like so (from maaku's Merkelized Prefix
// tree BIP):
//
//	      /\
//	     /  \
//	    /    \
//	 value   /\
//	        /  \
//	       /    \
//	      L      R
//
// so proving the value at depth 0 takes 1 hash, at depth 1 takes 3, and each
// further level adds two more: one for the value slot and one for the far
// child.

// InternalNodeProofLen converts a depth in an internal-value tree to a proof
// hash count.
func InternalNodeProofLen(depth uint64) uint64 {
	if depth == 0 {
		return 1
	}
	return (depth-1)*2 + 1
}

// OptimalProofLen is the theoretical ideal: a breadth first internal-value
// tree rebuilt at every step, so the most recent elements are always nearest
// the root:
//
//	           N
//	         /   \
//	        /     \
//	     N-1       N-2
//	    /   \     /   \
//	  N-3  N-4  N-5   N-6
//
// The depth of an element is log2 of its distance from the head. Nothing
// incremental can realize this shape; it is the yardstick the others are
// measured against.
func OptimalProofLen(n, to uint64) uint64 {
	return InternalNodeProofLen(BitLength64(n - to))
}

// ReverseBreadthProofLen is the same breadth first shape keyed from genesis
// instead of the head, so old elements are cheap and recent ones expensive.
func ReverseBreadthProofLen(n, to uint64) uint64 {
	return InternalNodeProofLen(BitLength64(to + 1))
}

// HuffmanProofLen is the external-node variant of the breadth first ideal: a
// Huffman code over access probability proportional to 1/distance assigns
// element to a depth of floor(log2(n-to)) + 1, and with external values the
// proof length equals the depth.
func HuffmanProofLen(n, to uint64) uint64 {
	return BitLength64(n - to)
}

// NaiveProofLen is a plain header chain: every block commits only to its
// parent, so reaching to costs one hash per intervening block.
func NaiveProofLen(n, to uint64) uint64 {
	return n - 1 - to
}
