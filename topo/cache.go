package topo

// The cache augmented MMR topologies keep the C "luckiest" ancestors (those
// whose hash permitted the largest skip) committed in a small side structure
// next to the plain MMR. A proof for a cached ancestor pays one hash to
// reach the side structure plus its depth inside it; everything else pays
// one hash to step past it and then the plain MMR cost.

// skipEntry records one observed block and the skip distance its hash earned.
type skipEntry struct {
	index uint64
	skip  uint64
}

// skipCache is a bounded set of entries ranked by skip, descending. When a
// luckier entry arrives the lowest ranked entry is evicted. Equal skips keep
// the earlier arrival ranked higher.
type skipCache struct {
	capacity int
	entries  []skipEntry
}

func (c *skipCache) observe(index, skip uint64) {
	at := len(c.entries)
	for at > 0 && c.entries[at-1].skip < skip {
		at--
	}
	if at >= c.capacity {
		return
	}
	c.entries = append(c.entries, skipEntry{})
	copy(c.entries[at+1:], c.entries[at:])
	c.entries[at] = skipEntry{index: index, skip: skip}
	if len(c.entries) > c.capacity {
		c.entries = c.entries[:c.capacity]
	}
}

// rank returns the position of index in the cache, or -1.
func (c *skipCache) rank(index uint64) int {
	for i, e := range c.entries {
		if e.index == index {
			return i
		}
	}
	return -1
}

// huffmanDepth builds a Huffman tree over the cached entries, weighted by
// skip magnitude, and returns the depth of the entry at position target.
// Lucky (heavy) entries end up near the root. Ties merge the lowest
// positions first so the result is deterministic.
func (c *skipCache) huffmanDepth(target int) uint64 {
	weights := make([]uint64, len(c.entries))
	members := make([][]int, len(c.entries))
	depths := make([]uint64, len(c.entries))
	for i, e := range c.entries {
		weights[i] = e.skip
		members[i] = []int{i}
	}

	for len(weights) > 1 {
		lo, next := lightest(weights)
		for _, m := range members[lo] {
			depths[m]++
		}
		for _, m := range members[next] {
			depths[m]++
		}
		weights[lo] += weights[next]
		members[lo] = append(members[lo], members[next]...)
		weights = append(weights[:next], weights[next+1:]...)
		members = append(members[:next], members[next+1:]...)
	}
	return depths[target]
}

// lightest returns the positions of the two smallest weights, first < second.
func lightest(weights []uint64) (int, int) {
	a, b := -1, -1
	for i, w := range weights {
		switch {
		case a == -1 || w < weights[a]:
			b = a
			a = i
		case b == -1 || w < weights[b]:
			b = i
		}
	}
	if a < b {
		return a, b
	}
	return b, a
}

type cachedMMR struct {
	id      ID
	huffman bool
	cache   skipCache
}

func newCachedMMR(id ID, capacity int, huffman bool) *cachedMMR {
	return &cachedMMR{id: id, huffman: huffman, cache: skipCache{capacity: capacity}}
}

func (o *cachedMMR) ID() ID { return o.id }

func (o *cachedMMR) ObserveSkip(index, skip uint64) {
	o.cache.observe(index, skip)
}

func (o *cachedMMR) ProofLen(n, to uint64) uint64 {
	assertInRange(n, to)

	// Too small for the side structure to pay for itself.
	if n < 2*uint64(o.cache.capacity) {
		return MMRProofLen(n, to)
	}

	pos := o.cache.rank(to)
	if pos < 0 {
		return 1 + MMRProofLen(n, to)
	}
	if o.huffman {
		return 1 + o.cache.huffmanDepth(pos)
	}
	// perfectly balanced tree over the cached entries
	return 1 + CeilLog2Uint64(uint64(len(o.cache.entries)))
}
