// spvsim explores back-link tree topologies for compact SPV proofs: it
// simulates a chain whose blocks can skip back a hash-derived distance and
// reports how many proof hashes each candidate topology needs to reach a
// target block from the head.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forestrie/go-spvsim/chain"
	"github.com/forestrie/go-spvsim/maaku"
	"github.com/forestrie/go-spvsim/report"
	"github.com/forestrie/go-spvsim/topo"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "spvsim",
		Short: "compare SPV proof topologies over a simulated skip-link chain",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newRunCmd(&debug))
	rootCmd.AddCommand(newIncrementalCmd(&debug))
	rootCmd.AddCommand(newTreeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// parseTopologies resolves a comma separated list of oracle identifiers;
// "all" selects every known topology.
func parseTopologies(arg string) ([]topo.ID, error) {
	if arg == "all" {
		return topo.IDs(), nil
	}
	var ids []topo.ID
	for _, name := range strings.Split(arg, ",") {
		id := topo.ID(strings.TrimSpace(name))
		if _, err := topo.New(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newRunCmd(debug *bool) *cobra.Command {
	var (
		num, target, seed uint64
		topologies        string
		optimal           bool
		chartPath         string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "score the requested topologies along one shared back-link path",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*debug)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ids, err := parseTopologies(topologies)
			if err != nil {
				return err
			}
			sim, err := chain.New(chain.Config{
				NumBlocks:  num,
				Target:     target,
				Seed:       seed,
				Topologies: ids,
			}, chain.WithLogger(log))
			if err != nil {
				return err
			}
			result, err := sim.Run()
			if err != nil {
				return err
			}

			if optimal {
				for _, id := range ids {
					if !topo.Fast(id) {
						continue
					}
					total, err := sim.RunOptimal(id)
					if err != nil {
						return err
					}
					result.Optimal = append(result.Optimal, chain.TopoTotal{ID: id, Hashes: total})
				}
			}

			if err := report.WriteSummary(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if chartPath == "" {
				return nil
			}
			f, err := os.Create(chartPath)
			if err != nil {
				return err
			}
			defer f.Close()
			return report.WriteChart(f, result)
		},
	}

	cmd.Flags().Uint64Var(&num, "num", 0, "chain length in blocks, including genesis")
	cmd.Flags().Uint64Var(&target, "target", 0, "block number to terminate the SPV proof at")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the deterministic hash stream")
	cmd.Flags().StringVar(&topologies, "topo", "all", "comma separated topologies, or 'all'")
	cmd.Flags().BoolVar(&optimal, "optimal", false, "also run the per-step optimal DP for fast topologies")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write an HTML bar chart to this file")
	cmd.MarkFlagRequired("num") //nolint:errcheck
	return cmd
}

func newIncrementalCmd(debug *bool) *cobra.Command {
	var (
		num, seed uint64
		topology  string
	)

	cmd := &cobra.Command{
		Use:   "incremental",
		Short: "grow the chain block by block, retaining only the live ancestor path",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*debug)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			oracle, err := topo.New(topo.ID(topology))
			if err != nil {
				return err
			}
			log.Infow("incremental accumulation", "blocks", num, "seed", seed, "topology", topology)
			result, err := chain.RunIncremental(chain.Config{NumBlocks: num, Seed: seed}, oracle)
			if err != nil {
				return err
			}
			return report.WriteIncrementalSummary(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Uint64Var(&num, "num", 0, "chain length in blocks, including genesis")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the deterministic hash stream")
	cmd.Flags().StringVar(&topology, "topo", string(topo.MMR), "fast stateless topology for path costs")
	cmd.MarkFlagRequired("num") //nolint:errcheck
	return cmd
}

func newTreeCmd() *cobra.Command {
	var (
		num     uint64
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "insert 0..num-1 into a maaku tree and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if num == 0 {
				return fmt.Errorf("need at least one element")
			}
			tree := &maaku.Tree{}
			for i := uint64(0); i < num; i++ {
				swaps := tree.Add(i)
				if verbose {
					fmt.Fprintf(cmd.OutOrStdout(),
						"adding node %d: max depth %d, swaps %d\n", i, tree.MaxDepth(), swaps)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.Dump().String())
			return nil
		},
	}

	cmd.Flags().Uint64Var(&num, "num", 0, "number of elements to insert")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print per-insert swap counts")
	cmd.MarkFlagRequired("num") //nolint:errcheck
	return cmd
}
