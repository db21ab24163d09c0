package chain

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-spvsim/topo"
)

var (
	ErrNoReachableAncestor = errors.New("no path entry within the skip budget")
	ErrPathEntryMissing    = errors.New("block missing from its own path")
	ErrOracleStateful      = errors.New("the path accumulator needs a stateless oracle")
	ErrTargetUnsupported   = errors.New("the path accumulator always proves to genesis")
)

// PathEntry names an ancestor a block retains and the number of proof hashes
// that ancestor needs to reach genesis.
type PathEntry struct {
	BlockIndex       uint64
	CumulativeHashes uint64
}

// Block is one simulated block in the incremental accumulator. Hash and Path
// never change once the block is built; PrevUsed and HashesToGenesis are
// fixed as soon as the following block exists.
type Block struct {
	Hash uint64
	// PrevUsed indexes the Path entry this block actually links through.
	PrevUsed int
	// HashesToGenesis is the total proof cost through PrevUsed.
	HashesToGenesis uint64
	// Path is this block's own view of reachable history. The entries are
	// merkled together (here: costed by the oracle); we hold them flat.
	Path []PathEntry
}

// Accumulator grows a chain one block at a time while retaining, per block,
// only the ancestor entries that remain reachable through the chosen links.
// Entries that fall off the live path are released as soon as the next block
// has committed to its ancestor.
//
// Proof costs inside a path use the oracle over the path positions, so the
// oracle must be fast and stateless; the default is the plain MMR.
type Accumulator struct {
	oracle topo.Oracle
	blocks []Block
}

func NewAccumulator(oracle topo.Oracle) (*Accumulator, error) {
	if oracle == nil {
		var err error
		if oracle, err = topo.New(topo.MMR); err != nil {
			return nil, err
		}
	}
	if !topo.Fast(oracle.ID()) {
		return nil, fmt.Errorf("%w: %s", ErrOracleTooSlow, oracle.ID())
	}
	if _, stateful := oracle.(topo.SkipObserver); stateful {
		// cache oracles rank global block indexes; inside a path the
		// oracle sees positions, so the cache could never hit honestly
		return nil, fmt.Errorf("%w: %s", ErrOracleStateful, oracle.ID())
	}
	return &Accumulator{
		oracle: oracle,
		blocks: []Block{{Path: []PathEntry{{}}}},
	}, nil
}

// Len returns the number of blocks accumulated so far, genesis included.
func (a *Accumulator) Len() uint64 { return uint64(len(a.blocks)) }

// Head returns the most recent block.
func (a *Accumulator) Head() *Block { return &a.blocks[len(a.blocks)-1] }

// pathProofLen is the proof cost of blockIndex within path: the first entry
// holding it gives the position the oracle prices. A miss means the
// incremental maintenance is broken, not that the caller erred.
func (a *Accumulator) pathProofLen(path []PathEntry, blockIndex uint64) (uint64, error) {
	for i, e := range path {
		if e.BlockIndex == blockIndex {
			return a.oracle.ProofLen(uint64(len(path)), uint64(i)), nil
		}
	}
	return 0, fmt.Errorf("%w: block %d", ErrPathEntryMissing, blockIndex)
}

// Append extends the chain with a block whose header hash is hash. The new
// block inherits the previous block's path up to and including the entry it
// linked through, gains the previous block itself as the newest entry, and
// then commits to the reachable entry with the cheapest total proof cost.
func (a *Accumulator) Append(hash uint64) error {
	i := uint64(len(a.blocks))
	prev := &a.blocks[i-1]

	path := make([]PathEntry, prev.PrevUsed+2)
	copy(path, prev.Path[:prev.PrevUsed+1])
	newest := prev.PrevUsed + 1
	path[newest].BlockIndex = i - 1
	plen, err := a.pathProofLen(path, i-1)
	if err != nil {
		return err
	}
	path[newest].CumulativeHashes = prev.HashesToGenesis + plen

	// Ancestors beyond the link the previous block used are no longer
	// reachable through the chain; release their retained paths.
	for _, stale := range prev.Path[prev.PrevUsed+1:] {
		a.blocks[stale.BlockIndex].Path = nil
	}

	skip := SkipForHash(hash, i)
	block := Block{Hash: hash, Path: path, PrevUsed: -1}
	best := uint64(0)
	for j, e := range path {
		if e.BlockIndex < i-skip {
			continue
		}
		plen, err := a.pathProofLen(path, e.BlockIndex)
		if err != nil {
			return err
		}
		if block.PrevUsed < 0 || e.CumulativeHashes+plen < best {
			best = e.CumulativeHashes + plen
			block.PrevUsed = j
		}
	}
	if block.PrevUsed < 0 {
		return fmt.Errorf("%w: block %d, skip %d", ErrNoReachableAncestor, i, skip)
	}
	block.HashesToGenesis = best

	a.blocks = append(a.blocks, block)
	return nil
}

// IncrementalResult is the proof summary for the head of an incrementally
// accumulated chain.
type IncrementalResult struct {
	NumBlocks uint64
	Seed      uint64
	Oracle    topo.ID
	// PathLen is the count of retained ancestor entries at the head.
	PathLen uint64
	// TotalHashes proves the head back to genesis through the chosen links.
	TotalHashes uint64
}

// Summary prices the head block's own link and reports the accumulated
// totals.
func (a *Accumulator) Summary() (*IncrementalResult, error) {
	head := a.Head()
	r := &IncrementalResult{
		NumBlocks: a.Len(),
		Oracle:    a.oracle.ID(),
		PathLen:   uint64(len(head.Path)) - 1,
	}
	if a.Len() == 1 {
		return r, nil
	}
	used := head.Path[head.PrevUsed]
	plen, err := a.pathProofLen(head.Path, used.BlockIndex)
	if err != nil {
		return nil, err
	}
	r.TotalHashes = used.CumulativeHashes + plen
	return r, nil
}

// RunIncremental drives an accumulator over a full chain derived from seed.
// The accumulator always proves to genesis, so targets are rejected rather
// than silently ignored.
func RunIncremental(cfg Config, oracle topo.Oracle) (*IncrementalResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Target != 0 {
		return nil, fmt.Errorf("%w: target %d", ErrTargetUnsupported, cfg.Target)
	}
	acc, err := NewAccumulator(oracle)
	if err != nil {
		return nil, err
	}
	stream := NewHashStream(cfg.Seed)
	for i := uint64(1); i < cfg.NumBlocks; i++ {
		if err := acc.Append(stream.Next()); err != nil {
			return nil, err
		}
	}
	result, err := acc.Summary()
	if err != nil {
		return nil, err
	}
	result.Seed = cfg.Seed
	return result, nil
}
