// Package maaku implements the incremental internal-value tree structure
// proposed by maaku (Mark Friedenbach) for more compact SPV proofs.
//
// The tree keeps the last log(N) inserted values close to the root, while
// still supporting incremental append. A subtree is considered fixed once it
// is completely populated down to the tree's maximum depth: nothing in a
// fixed subtree moves after that point. When the whole tree is fixed, a new
// root is started above it.
//
// The root always holds the most recently inserted value; non-fixed nodes
// are swapped down as an insert descends, preferring the left child to the
// right.
package maaku

// Node is a single tree node. Each node is exclusively owned by its parent,
// and the tree owns its root; there is no sharing and there are no cycles,
// so unlinking a subtree releases it.
type Node struct {
	// Value is the inserted element. In the simulations this is just a
	// block number.
	Value uint64
	// Depth is the distance from the root. It only changes when the tree
	// is re-rooted, which raises every existing node by one level.
	Depth uint64
	Child [2]*Node

	fixed bool
}

// Tree is an incrementally maintained maaku tree. The zero value is an empty
// tree ready for use.
type Tree struct {
	maxDepth uint64
	root     *Node
}

// Root returns the current root node, or nil for an empty tree. The root
// value is always the most recently added value.
func (t *Tree) Root() *Node { return t.root }

// MaxDepth returns the current maximum depth. After k adds it is
// floor(log2(k)) for k >= 1.
func (t *Tree) MaxDepth() uint64 { return t.maxDepth }

// isFixed reports whether the subtree rooted at node forms a complete tree
// down to maxDepth. The result is memoized on first becoming true and is
// never re-evaluated: fixed subtrees are write-once.
func (t *Tree) isFixed(node *Node) bool {
	if node.fixed {
		return true
	}
	if node.Depth == t.maxDepth {
		node.fixed = true
		return true
	}
	if node.Child[0] == nil || node.Child[1] == nil {
		return false
	}
	node.fixed = t.isFixed(node.Child[0]) && t.isFixed(node.Child[1])
	return node.fixed
}

// Add inserts value into the tree and returns the number of value swaps the
// insert performed. The swap count is the incremental maintenance cost, and
// is what makes this structure interesting to compare against rebuild-only
// topologies.
func (t *Tree) Add(value uint64) int {

	incoming := &Node{Value: value}

	if t.root == nil {
		t.root = incoming
		t.maxDepth = 0
		return 0
	}

	// Start a new level? Once the whole tree is fixed the only place left
	// for a new node is a fresh root above everything. Every existing
	// node gets one deeper, which is the dominant (O(n)) incremental
	// cost of this structure.
	if t.isFixed(t.root) {
		incoming.Child[0] = t.root
		t.root = incoming
		t.maxDepth++
		incDepths(incoming.Child[0])
		return 0
	}

	// The left subtree fills (and fixes) before the right is touched.
	if !t.isFixed(t.root.Child[0]) {
		panic("maaku: left subtree must fix before the right fills")
	}

	return t.addAt(t.root, incoming)
}

// addAt descends from node looking for the insertion point, swapping values
// as it goes so that the newest values stay nearest the root. The incoming
// node carries the displaced older value downward.
func (t *Tree) addAt(node, incoming *Node) int {
	swaps := 0
	for {
		node.Value, incoming.Value = incoming.Value, node.Value
		swaps++

		if node.Child[0] == nil {
			node.Child[0] = incoming
			incoming.Depth = node.Depth + 1
			return swaps
		}
		if !t.isFixed(node.Child[0]) {
			node = node.Child[0]
			continue
		}
		if node.Child[1] == nil {
			node.Child[1] = incoming
			incoming.Depth = node.Depth + 1
			return swaps
		}
		// At most one child of a non-fixed node can itself be non-fixed
		// on the active insertion path.
		if t.isFixed(node.Child[1]) {
			panic("maaku: both children fixed on the insertion path")
		}
		node = node.Child[1]
	}
}

func incDepths(n *Node) {
	n.Depth++
	if n.Child[0] != nil {
		incDepths(n.Child[0])
	}
	if n.Child[1] != nil {
		incDepths(n.Child[1])
	}
}

// Find returns the first node holding value, searching depth first with the
// left child visited before the right, or nil if value is not present.
// Values are not ordered, so this is a full traversal; it exists for the
// depth queries used by the maaku proof-length oracle and for testing.
func Find(n *Node, value uint64) *Node {
	if n == nil {
		return nil
	}
	if n.Value == value {
		return n
	}
	if found := Find(n.Child[0], value); found != nil {
		return found
	}
	return Find(n.Child[1], value)
}
