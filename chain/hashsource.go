// Package chain simulates a chain of blocks whose headers can skip back a
// pseudo random distance, and scores candidate back-link topologies by the
// total proof hashes needed to reach a target block from the head.
package chain

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
)

// HashStream is the simulated source of block hashes: a BLAKE3 XOF keyed by
// the seed, read 64 bits at a time. The values stand in for real header
// hashes; nothing is ever verified against them, they only drive the skip
// distances. The stream must be consumed in block-index order, one value per
// block from index 1 upward, for runs with the same seed to be reproducible.
type HashStream struct {
	xof *blake3.Digest
}

func NewHashStream(seed uint64) *HashStream {
	h := blake3.New()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	h.Write(b[:])
	return &HashStream{xof: h.Digest()}
}

// Next returns the hash for the next block. The XOF read cannot fail.
func (s *HashStream) Next() uint64 {
	var b [8]byte
	s.xof.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// SkipForHash derives how far back block i may link given its hash. A
// header whose hash beats the required difficulty by a factor of k earns a
// skip of k, so small (rare) hashes earn the long jumps and the distribution
// is heavy tailed. The skip never reaches past genesis.
func SkipForHash(hash, i uint64) uint64 {
	if hash == 0 {
		return i
	}
	skip := uint64(math.MaxUint64) / hash
	if skip > i {
		skip = i
	}
	return skip
}
