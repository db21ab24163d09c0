package chain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-spvsim/topo"
)

func mustAccumulator(t *testing.T) *Accumulator {
	t.Helper()
	acc, err := NewAccumulator(nil)
	require.NoError(t, err)
	return acc
}

// MaxUint64 hashes earn a skip of exactly one, so the chain degenerates to a
// plain parent chain and every cost can be traced by hand against the MMR
// oracle over the growing path.
func TestAccumulatorParentChain(t *testing.T) {
	acc := mustAccumulator(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, acc.Append(math.MaxUint64))
	}

	head := acc.Head()
	assert.Equal(t, []PathEntry{{0, 0}, {1, 2}, {2, 4}}, head.Path)
	assert.Equal(t, 2, head.PrevUsed)
	assert.Equal(t, uint64(5), head.HashesToGenesis)

	summary, err := acc.Summary()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.PathLen)
	assert.Equal(t, uint64(5), summary.TotalHashes)
	assert.Equal(t, topo.MMR, summary.Oracle)
}

// a hash of 1 lets the block skip all the way back; the entries behind the
// chosen genesis link must be pruned from the blocks that held them
func TestAccumulatorPrunesUnreachableEntries(t *testing.T) {
	acc := mustAccumulator(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, acc.Append(math.MaxUint64))
	}
	// block 3 jumps to genesis
	require.NoError(t, acc.Append(1))
	assert.Equal(t, 0, acc.Head().PrevUsed)
	assert.Equal(t, uint64(2), acc.Head().HashesToGenesis)

	// block 4 linked through genesis, so block 4's successor keeps only
	// genesis and block 4 itself; blocks 1..3 fell off the live path and
	// their retained paths are released
	require.NoError(t, acc.Append(math.MaxUint64))
	head := acc.Head()
	require.Equal(t, []PathEntry{{0, 0}, {4, 3}}, head.Path)
	assert.Equal(t, 1, head.PrevUsed)
	assert.Equal(t, uint64(4), head.HashesToGenesis)
	for _, pruned := range []int{1, 2, 3} {
		assert.Nil(t, acc.blocks[pruned].Path, "block %d", pruned)
	}
	assert.NotNil(t, acc.blocks[4].Path)
}

func TestAccumulatorGenesisOnly(t *testing.T) {
	acc := mustAccumulator(t)
	summary, err := acc.Summary()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.NumBlocks)
	assert.Equal(t, uint64(0), summary.PathLen)
	assert.Equal(t, uint64(0), summary.TotalHashes)
}

func TestNewAccumulatorRejectsUnsuitableOracles(t *testing.T) {
	slow, err := topo.New(topo.Maaku)
	require.NoError(t, err)
	_, err = NewAccumulator(slow)
	assert.ErrorIs(t, err, ErrOracleTooSlow)

	cached, err := topo.New(topo.MMRCache16)
	require.NoError(t, err)
	_, err = NewAccumulator(cached)
	assert.ErrorIs(t, err, ErrOracleStateful)
}

func TestRunIncrementalDeterminism(t *testing.T) {
	cfg := Config{NumBlocks: 500, Seed: 23}
	first, err := RunIncremental(cfg, nil)
	require.NoError(t, err)
	second, err := RunIncremental(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the retained path can never exceed the chain itself
	assert.Less(t, first.PathLen, cfg.NumBlocks)
	assert.NotZero(t, first.TotalHashes)
}

func TestRunIncrementalRejectsTargets(t *testing.T) {
	_, err := RunIncremental(Config{NumBlocks: 10, Target: 3}, nil)
	assert.ErrorIs(t, err, ErrTargetUnsupported)
}

func TestRunIncrementalOptimalOracle(t *testing.T) {
	oracle, err := topo.New(topo.Optimal)
	require.NoError(t, err)
	result, err := RunIncremental(Config{NumBlocks: 100, Seed: 1}, oracle)
	require.NoError(t, err)
	assert.Equal(t, topo.Optimal, result.Oracle)
	assert.NotZero(t, result.TotalHashes)
}
