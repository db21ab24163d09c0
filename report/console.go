// Package report renders simulation results for people: a plain console
// summary and an HTML chart for comparing topologies side by side.
package report

import (
	"fmt"
	"io"

	"github.com/forestrie/go-spvsim/chain"
)

// WriteSummary prints one line per topology. The format is stable so that
// runs with the same configuration are byte identical.
func WriteSummary(w io.Writer, r *chain.Result) error {
	if _, err := fmt.Fprintf(w, "blocks %d target %d seed %d: path %d hops\n",
		r.NumBlocks, r.Target, r.Seed, r.Hops); err != nil {
		return err
	}
	for _, t := range r.Totals {
		if _, err := fmt.Fprintf(w, "%s: proof hashes %d\n", t.ID, t.Hashes); err != nil {
			return err
		}
	}
	for _, t := range r.Optimal {
		if _, err := fmt.Fprintf(w, "%s-optimal: proof hashes %d\n", t.ID, t.Hashes); err != nil {
			return err
		}
	}
	return nil
}

// WriteIncrementalSummary prints the path accumulator result.
func WriteIncrementalSummary(w io.Writer, r *chain.IncrementalResult) error {
	_, err := fmt.Fprintf(w, "%s: proof path %d, hashes %d\n",
		r.Oracle, r.PathLen, r.TotalHashes)
	return err
}
