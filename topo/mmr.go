package topo

import "math/bits"

// PeakSizes decomposes a commitment over n elements into its merkle mountain
// range peaks: one complete binary subtree per set bit of n, largest first.
// The peak count is popcount(n) and the sizes always sum to n. So 7 elements
// make three peaks of sizes {4, 2, 1}:
//
//	  (1)     (2)    (3)
//
//	   /\      /\     6
//	  /  \    4  5
//	 /\  /\
//	0 1  2 3
func PeakSizes(n uint64) []uint64 {
	if n == 0 {
		return nil
	}
	sizes := make([]uint64, 0, bits.OnesCount64(n))
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		if n&(uint64(1)<<uint(i)) != 0 {
			sizes = append(sizes, uint64(1)<<uint(i))
		}
	}
	return sizes
}

// MMRProofLen connects the peaks with the RFC 6962 rule applied to the peak
// sequence itself, which makes recent elements cheaper. The 7 element range
// above bags up like so:
//
//	         /\(3)
//	        /  6
//	       /\
//	      /  \
//	     /    \
//	    /(1)   \ (2)
//	   /\      /\
//	  /  \    4  5
//	 /\  /\
//	0 1  2 3
//
// The proof reaches the peak holding to through the peak sequence, then
// descends the peak's own log2(size) levels.
func MMRProofLen(n, to uint64) uint64 {
	sizes := PeakSizes(n)
	var off, peakIndex uint64
	for _, size := range sizes {
		off += size
		if to < off {
			return RFC6962ProofLen(uint64(len(sizes)), peakIndex) + Log2Uint64(size)
		}
		peakIndex++
	}
	panic("topo: element beyond the committed size")
}

// MMRLinearProofLen chains the peaks one after another instead of bagging
// them RFC 6962 style: one hash per peak from the head of the chain to the
// target's peak, then the descent within the peak.
func MMRLinearProofLen(n, to uint64) uint64 {
	sizes := PeakSizes(n)
	var off, peakIndex uint64
	for _, size := range sizes {
		off += size
		if to < off {
			peaksAfter := uint64(len(sizes)) - 1 - peakIndex
			return uint64(len(sizes)) - peaksAfter + Log2Uint64(size)
		}
		peakIndex++
	}
	panic("topo: element beyond the committed size")
}
