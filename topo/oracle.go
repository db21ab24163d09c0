// Package topo is a library of proof-path topology oracles.
//
// Each oracle answers one question: for a commitment over the elements
// [0, n), how many hashes does an inclusion proof for element to cost under
// this tree shape? The oracles never materialize hashes; they are index
// arithmetic only, in the style of the merklelog mmr package, and exist so
// that candidate back-link structures for compact SPV proofs can be compared
// against each other on equal terms.
package topo

import (
	"errors"
	"fmt"
)

// ID selects one oracle from the closed set below.
type ID string

const (
	Array          ID = "array"
	Optimal        ID = "optimal"
	Maaku          ID = "maaku"
	MMR            ID = "mmr"
	MMRLinear      ID = "mmr-linear"
	BreadthBatch   ID = "breadth-batch"
	ArrayBatch     ID = "array-batch"
	MMRCache16     ID = "mmr-cache-16"
	MMRCache32     ID = "mmr-cache-32"
	MMRCache64     ID = "mmr-cache-64"
	MMRCacheHuff32 ID = "mmr-cachehuff-32"
	MMRCacheHuff64 ID = "mmr-cachehuff-64"
	Huffman        ID = "huffman"
	Naive          ID = "naive"
	RFC6962        ID = "rfc6962"
	ReverseRFC6962 ID = "reverse-rfc6962"
	ReverseBreadth ID = "reverse-breadth"
)

var ErrUnknownOracle = errors.New("unknown topology oracle")

// Oracle computes proof-hash counts for one topology. ProofLen requires
// 0 <= to < n; the oracles assume well formed input and panic otherwise,
// they do not re-validate for the caller.
//
// The closed-form oracles are pure. The cache backed oracles carry state fed
// through SkipObserver and must be given a fresh instance per simulation.
type Oracle interface {
	ID() ID
	ProofLen(n, to uint64) uint64
}

// SkipObserver is implemented by oracles whose shape depends on the skip
// distances seen on the chain so far. The simulator feeds every block to the
// observer in index order, after the block's own cost has been settled.
type SkipObserver interface {
	ObserveSkip(index, skip uint64)
}

// funcOracle adapts the pure proof-length functions to the Oracle interface.
type funcOracle struct {
	id ID
	fn func(n, to uint64) uint64
}

func (o funcOracle) ID() ID { return o.id }

func (o funcOracle) ProofLen(n, to uint64) uint64 {
	assertInRange(n, to)
	return o.fn(n, to)
}

func assertInRange(n, to uint64) {
	if to >= n {
		panic(fmt.Sprintf("topo: to %d out of range for committed size %d", to, n))
	}
}

// New returns a fresh oracle for id.
func New(id ID) (Oracle, error) {
	switch id {
	case Array:
		return funcOracle{id, ArrayProofLen}, nil
	case Optimal:
		return funcOracle{id, OptimalProofLen}, nil
	case Maaku:
		return funcOracle{id, MaakuProofLen}, nil
	case MMR:
		return funcOracle{id, MMRProofLen}, nil
	case MMRLinear:
		return funcOracle{id, MMRLinearProofLen}, nil
	case BreadthBatch:
		return funcOracle{id, BreadthBatchProofLen}, nil
	case ArrayBatch:
		return funcOracle{id, ArrayBatchProofLen}, nil
	case MMRCache16:
		return newCachedMMR(id, 16, false), nil
	case MMRCache32:
		return newCachedMMR(id, 32, false), nil
	case MMRCache64:
		return newCachedMMR(id, 64, false), nil
	case MMRCacheHuff32:
		return newCachedMMR(id, 32, true), nil
	case MMRCacheHuff64:
		return newCachedMMR(id, 64, true), nil
	case Huffman:
		return funcOracle{id, HuffmanProofLen}, nil
	case Naive:
		return funcOracle{id, NaiveProofLen}, nil
	case RFC6962:
		return funcOracle{id, RFC6962ProofLen}, nil
	case ReverseRFC6962:
		return funcOracle{id, ReverseRFC6962ProofLen}, nil
	case ReverseBreadth:
		return funcOracle{id, ReverseBreadthProofLen}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOracle, id)
}

// IDs returns every oracle identifier in a stable reporting order.
func IDs() []ID {
	return []ID{
		Array, Optimal, Maaku, MMR, MMRLinear,
		BreadthBatch, ArrayBatch,
		MMRCache16, MMRCache32, MMRCache64,
		MMRCacheHuff32, MMRCacheHuff64,
		Huffman, Naive, RFC6962, ReverseRFC6962, ReverseBreadth,
	}
}

// Fast reports whether the oracle is cheap enough to evaluate per candidate
// inside the dynamic programming scan. The oracles that answer by building
// an ephemeral tree and measuring a depth are not: they are only evaluated
// along an already chosen path.
func Fast(id ID) bool {
	switch id {
	case Array, Maaku, ArrayBatch:
		return false
	}
	return true
}
