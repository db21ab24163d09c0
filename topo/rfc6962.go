package topo

// RFC6962ProofLen is the proof length for element to in an RFC 6962 style
// tree committing the elements [0, n), built in order with external values:
//
//	        ^
//	       / \
//	      /\  \
//	     /  \  \
//	    /    \  \
//	   /\    /\  \
//	  0  1  2  3  4
//
// The range splits at the largest power of two strictly less than its size
// and the proof pays one hash per level descended. A singleton range is the
// value itself and costs nothing (the external-node convention; every
// topology derived from this rule shares it). So for n = 5 the proof lengths
// are {3, 3, 3, 3, 1}.
func RFC6962ProofLen(n, to uint64) uint64 {
	return rangeProofLen(to, 0, n)
}

// ReverseRFC6962ProofLen indexes the same tree from the other end, so the
// most recent elements sit where genesis would and get the long proofs.
func ReverseRFC6962ProofLen(n, to uint64) uint64 {
	return RFC6962ProofLen(n, n-1-to)
}

func rangeProofLen(to, start, end uint64) uint64 {
	if end-start == 1 {
		if to != start {
			panic("topo: range descent lost the target")
		}
		return 0
	}
	split := start + splitSize(end-start)
	if to < split {
		return 1 + rangeProofLen(to, start, split)
	}
	return 1 + rangeProofLen(to, split, end)
}
