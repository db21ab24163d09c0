package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/forestrie/go-spvsim/chain"
)

// WriteChart renders a bar chart of total proof hashes per topology as a
// standalone HTML page.
func WriteChart(w io.Writer, r *chain.Result) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "SPV proof hashes to target",
			Subtitle: fmt.Sprintf("%d blocks, target %d, seed %d, %d hops",
				r.NumBlocks, r.Target, r.Seed, r.Hops),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(r.Totals))
	shared := make([]opts.BarData, 0, len(r.Totals))
	for _, t := range r.Totals {
		names = append(names, string(t.ID))
		shared = append(shared, opts.BarData{Value: t.Hashes})
	}
	bar.SetXAxis(names).AddSeries("shared path", shared)

	if len(r.Optimal) > 0 {
		// the optimal DP only runs for the fast oracles; leave gaps for
		// the rest so the two series share one axis
		byID := map[string]uint64{}
		for _, t := range r.Optimal {
			byID[string(t.ID)] = t.Hashes
		}
		optimal := make([]opts.BarData, 0, len(r.Totals))
		for _, name := range names {
			if hashes, ok := byID[name]; ok {
				optimal = append(optimal, opts.BarData{Value: hashes})
				continue
			}
			optimal = append(optimal, opts.BarData{Value: nil})
		}
		bar.AddSeries("per-step optimal", optimal)
	}
	return bar.Render(w)
}
