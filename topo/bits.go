package topo

import "math/bits"

func BitLength64(num uint64) uint64 { return uint64(bits.Len64(num)) }

// Log2Uint64 efficiently computes log base 2 of num
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}

// CeilLog2Uint64 rounds up, so CeilLog2Uint64(5) is 3.
func CeilLog2Uint64(num uint64) uint64 {
	if num <= 1 {
		return 0
	}
	return uint64(bits.Len64(num - 1))
}

// splitSize returns the largest power of two strictly less than size. It is
// the left range width used by the recursive halving rule, so for a range of
// 5 leaves the split is 4 + 1, and for 4 it is 2 + 2.
func splitSize(size uint64) uint64 {
	return uint64(1) << (BitLength64(size-1) - 1)
}
