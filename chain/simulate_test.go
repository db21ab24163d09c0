package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-spvsim/topo"
)

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrEmptyChain)
	assert.ErrorIs(t, Config{NumBlocks: 5, Target: 5}.Validate(), ErrTargetBeyondChain)
	assert.ErrorIs(t, Config{NumBlocks: 5, Target: 9}.Validate(), ErrTargetBeyondChain)
	assert.NoError(t, Config{NumBlocks: 5, Target: 4}.Validate())
	assert.NoError(t, Config{NumBlocks: 1}.Validate())
}

func TestRunDeterminism(t *testing.T) {
	cfg := Config{
		NumBlocks:  100,
		Seed:       7,
		Topologies: topo.IDs(),
	}
	sim, err := New(cfg)
	require.NoError(t, err)
	first, err := sim.Run()
	require.NoError(t, err)

	sim2, err := New(cfg)
	require.NoError(t, err)
	second, err := sim2.Run()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunSkipBound(t *testing.T) {
	cfg := Config{NumBlocks: 500, Seed: 3, Topologies: []topo.ID{topo.MMR}}
	sim, err := New(cfg)
	require.NoError(t, err)
	result, err := sim.Run()
	require.NoError(t, err)

	skips := sim.blockSkips()
	require.Equal(t, uint64(499), result.Path[0])
	require.Equal(t, uint64(0), result.Path[len(result.Path)-1])
	for k := 0; k+1 < len(result.Path); k++ {
		i, j := result.Path[k], result.Path[k+1]
		assert.Less(t, j, i)
		assert.GreaterOrEqual(t, j, i-skips[i], "block %d skip %d", i, skips[i])
	}
}

func TestRunSingleBlock(t *testing.T) {
	sim, err := New(Config{NumBlocks: 1, Topologies: []topo.ID{topo.Optimal}})
	require.NoError(t, err)
	result, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Hops)
	assert.Equal(t, []uint64{0}, result.Path)
	assert.Equal(t, []TopoTotal{{topo.Optimal, 0}}, result.Totals)
}

func TestRunHeadIsTarget(t *testing.T) {
	sim, err := New(Config{NumBlocks: 10, Target: 9, Seed: 1, Topologies: []topo.ID{topo.MMR}})
	require.NoError(t, err)
	result, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Hops)
	assert.Equal(t, uint64(0), result.Totals[0].Hashes)
}

func TestRunPathStopsAtTarget(t *testing.T) {
	sim, err := New(Config{NumBlocks: 300, Target: 200, Seed: 11, Topologies: []topo.ID{topo.Naive}})
	require.NoError(t, err)
	result, err := sim.Run()
	require.NoError(t, err)
	for _, i := range result.Path {
		assert.GreaterOrEqual(t, i, uint64(200))
	}
	assert.Equal(t, uint64(200), result.Path[len(result.Path)-1])
}

// every block can link to its parent for free under the naive topology, so
// the optimal DP always finds a zero cost route
func TestRunOptimalNaiveIsFree(t *testing.T) {
	sim, err := New(Config{NumBlocks: 200, Seed: 5})
	require.NoError(t, err)
	total, err := sim.RunOptimal(topo.Naive)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
}

// the per-step DP may never do worse than the same oracle along the shared
// path: that path is one of the routes the DP considers
func TestRunOptimalBeatsSharedPath(t *testing.T) {
	fast := []topo.ID{}
	for _, id := range topo.IDs() {
		if topo.Fast(id) {
			fast = append(fast, id)
		}
	}
	cfg := Config{NumBlocks: 300, Seed: 9, Topologies: fast}
	sim, err := New(cfg)
	require.NoError(t, err)
	shared, err := sim.Run()
	require.NoError(t, err)

	for k, id := range fast {
		optimal, err := sim.RunOptimal(id)
		require.NoError(t, err)
		assert.LessOrEqual(t, optimal, shared.Totals[k].Hashes, "topology %s", id)
	}
}

func TestRunOptimalRejectsSlowOracles(t *testing.T) {
	sim, err := New(Config{NumBlocks: 10, Seed: 1})
	require.NoError(t, err)
	for _, id := range []topo.ID{topo.Array, topo.Maaku, topo.ArrayBatch} {
		_, err := sim.RunOptimal(id)
		assert.ErrorIs(t, err, ErrOracleTooSlow, "topology %s", id)
	}
}

func TestRunUnknownTopology(t *testing.T) {
	sim, err := New(Config{NumBlocks: 10, Topologies: []topo.ID{"escher"}})
	require.NoError(t, err)
	_, err = sim.Run()
	assert.ErrorIs(t, err, topo.ErrUnknownOracle)
}
