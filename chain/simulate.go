package chain

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/forestrie/go-spvsim/topo"
)

var (
	ErrEmptyChain        = errors.New("chain must contain at least the genesis block")
	ErrTargetBeyondChain = errors.New("target block is not in the chain")
	ErrOracleTooSlow     = errors.New("oracle cannot be evaluated per candidate")
)

// Config describes one simulation run. Identical configs produce identical
// results.
type Config struct {
	// NumBlocks is the chain length including genesis, at least 1.
	NumBlocks uint64
	// Target is the block the proof must reach; 0 is genesis.
	Target uint64
	// Seed keys the hash stream.
	Seed uint64
	// Topologies are the oracles to score along the shared path.
	Topologies []topo.ID
}

func (c Config) Validate() error {
	if c.NumBlocks < 1 {
		return ErrEmptyChain
	}
	if c.Target >= c.NumBlocks {
		return fmt.Errorf("%w: target %d, chain height %d", ErrTargetBeyondChain, c.Target, c.NumBlocks)
	}
	return nil
}

// TopoTotal is the total proof hash count one topology needs for the run.
type TopoTotal struct {
	ID     topo.ID
	Hashes uint64
}

type Result struct {
	NumBlocks uint64
	Target    uint64
	Seed      uint64
	// Hops is the number of back links on the chosen path from the head
	// to the target.
	Hops uint64
	// Path lists the chosen blocks from the head down to the target,
	// both inclusive.
	Path   []uint64
	Totals []TopoTotal
	// Optimal holds the per-topology full-DP totals when they were
	// requested; the path may differ per topology here.
	Optimal []TopoTotal
}

type Simulator struct {
	cfg Config
	log *zap.SugaredLogger
}

type Option func(*Simulator)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Simulator) {
		if log != nil {
			s.log = log
		}
	}
}

func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{cfg: cfg, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// blockSkips derives the skip distance of every block from the hash stream.
// The stream is consumed once per block from index 1 upward regardless of
// the target, so a given seed always names the same chain.
func (s *Simulator) blockSkips() []uint64 {
	stream := NewHashStream(s.cfg.Seed)
	skips := make([]uint64, s.cfg.NumBlocks)
	for i := uint64(1); i < s.cfg.NumBlocks; i++ {
		skips[i] = SkipForHash(stream.Next(), i)
	}
	return skips
}

// lowestReachable is the oldest candidate back link for block i. Candidates
// past the target are pointless: the walk terminates there.
func (s *Simulator) lowestReachable(i, skip uint64) uint64 {
	lo := i - skip
	if lo < s.cfg.Target {
		lo = s.cfg.Target
	}
	return lo
}

// Run picks one shared back-link path with a generic one-hash-per-hop DP and
// then sums each requested topology's proof cost along that same path. Every
// topology is judged on identical link choices, which isolates the effect of
// the tree shape from the effect of the path.
//
// The scan runs from i-1 downward and only a strictly cheaper candidate
// displaces the incumbent, so ties keep the nearest ancestor.
func (s *Simulator) Run() (*Result, error) {
	cfg := s.cfg
	n := cfg.NumBlocks
	s.log.Infow("simulating chain", "blocks", n, "seed", cfg.Seed, "target", cfg.Target)

	skips := s.blockSkips()
	dist := make([]uint64, n)
	step := make([]uint64, n)
	for i := cfg.Target + 1; i < n; i++ {
		lo := s.lowestReachable(i, skips[i])
		best, bestCost := i-1, dist[i-1]+1
		for j := i - 1; ; j-- {
			if cost := dist[j] + 1; cost < bestCost {
				best, bestCost = j, cost
			}
			if j == lo {
				break
			}
		}
		dist[i] = bestCost
		step[i] = best
	}

	onPath := make([]bool, n)
	path := []uint64{n - 1}
	for i := n - 1; i != cfg.Target; i = step[i] {
		onPath[i] = true
		path = append(path, step[i])
	}
	hops := uint64(len(path)) - 1
	s.log.Infow("path chosen", "hops", hops, "hop dp cost", dist[n-1])

	result := &Result{
		NumBlocks: n,
		Target:    cfg.Target,
		Seed:      cfg.Seed,
		Hops:      hops,
		Path:      path,
	}
	for _, id := range cfg.Topologies {
		oracle, err := topo.New(id)
		if err != nil {
			return nil, err
		}
		observer, observes := oracle.(topo.SkipObserver)

		// Replay the chain in block order so stateful oracles see the
		// skips exactly as they happened: a block's cost is settled
		// before the block itself becomes an observable ancestor.
		var total uint64
		for i := cfg.Target + 1; i < n; i++ {
			if onPath[i] {
				total += oracle.ProofLen(i, step[i])
			}
			if observes {
				observer.ObserveSkip(i, skips[i])
			}
		}
		result.Totals = append(result.Totals, TopoTotal{ID: id, Hashes: total})
	}
	return result, nil
}

// RunOptimal reruns the DP with the oracle's own proof cost as the edge
// weight, so every block picks the ancestor that is cheapest under this
// specific topology. Only oracles cheap enough per candidate are allowed;
// the scan visits O(n * skip) candidates.
func (s *Simulator) RunOptimal(id topo.ID) (uint64, error) {
	if !topo.Fast(id) {
		return 0, fmt.Errorf("%w: %s", ErrOracleTooSlow, id)
	}
	oracle, err := topo.New(id)
	if err != nil {
		return 0, err
	}
	observer, observes := oracle.(topo.SkipObserver)

	cfg := s.cfg
	n := cfg.NumBlocks
	skips := s.blockSkips()
	dist := make([]uint64, n)
	for i := cfg.Target + 1; i < n; i++ {
		lo := s.lowestReachable(i, skips[i])
		best := uint64(math.MaxUint64)
		for j := i - 1; ; j-- {
			if cost := oracle.ProofLen(i, j) + dist[j]; cost < best {
				best = cost
			}
			if j == lo {
				break
			}
		}
		dist[i] = best
		if observes {
			observer.ObserveSkip(i, skips[i])
		}
	}
	s.log.Infow("optimal dp complete", "topology", id, "hashes", dist[n-1])
	return dist[n-1], nil
}
