package topo

// BatchSize is the width of one closed subtree in the batched topologies.
// 65535 keeps the per-batch proof inside 16 levels while the backbone stays
// shallow for chains of realistic height.
const BatchSize = 65535

// The batched topologies are the incrementability-preserving compromise: a
// breadth first tree is only ever built for the current batch, and closed
// batches are committed once and never touched again.
//
//	             /\
//	            /  \
//	           /    \
//	          /\    optimal tree for 196605... (under construction)
//	         /  \
//	        /    \
//	       /\  131070-196604
//	      /  \
//	     /    \
//	 0-65534 65535-131069

// BreadthBatchProofLen chains the closed batches down the left spine, one
// hash per batch stepped over, plus the breadth first proof inside the
// target's batch.
func BreadthBatchProofLen(n, to uint64) uint64 {
	return batchProofLen(n, to, false)
}

// ArrayBatchProofLen instead commits all closed batches into a single array
// style backbone, so old batches cost log of the closed prefix rather than a
// linear walk.
func ArrayBatchProofLen(n, to uint64) uint64 {
	return batchProofLen(n, to, true)
}

func batchProofLen(n, to uint64, array bool) uint64 {
	nBatch := n / BatchSize
	toBatch := to / BatchSize

	if nBatch == toBatch {
		// Still in the batch under construction. Before the first batch
		// closes this is exactly the optimal shape; afterwards one hash
		// joins the open batch to the backbone.
		if n < BatchSize {
			return OptimalProofLen(n, to)
		}
		return 1 + OptimalProofLen(n, to)
	}

	if array {
		return 1 + ArrayProofLen(nBatch*BatchSize, to)
	}

	// One hash to reach the closed batches, one more per batch walked over.
	depth := 1 + nBatch - toBatch
	// The first batch hangs directly on the left spine.
	if toBatch == 0 {
		depth--
	}
	return depth + OptimalProofLen(BatchSize, to%BatchSize)
}
