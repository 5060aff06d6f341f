package cli

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
)

const defaultMaxTableStates = 20000

type compareOpts struct {
	input          string
	maxTableStates int // table-filling is skipped above this many reachable states
}

// comparison is the outcome of one refiner on the shared pruned input.
type comparison struct {
	alg       automaton.Algorithm
	partition *automaton.Partition
	elapsed   time.Duration
}

func (c *CLI) compareCommand() *cobra.Command {
	opts := compareOpts{maxTableStates: defaultMaxTableStates}

	cmd := &cobra.Command{
		Use:   "compare [input]",
		Short: "Run every minimizer on one DFA and check that they agree",
		Long: `Prunes the DFA once, runs Hopcroft, Moore and table-filling on the result, reports
the time each took and fails unless all of them produce the same partition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input, _ = inputOutput(args, "")
			return c.runCompare(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxTableStates, "max-table-states", opts.maxTableStates,
		"skip table-filling above this many reachable states (0 = never skip)")
	return cmd
}

func (c *CLI) runCompare(cmd *cobra.Command, opts compareOpts) error {
	prog := newProgress(c.Logger)
	a, err := c.loadAutomaton(cmd.Context(), opts.input, false)
	if err != nil {
		return err
	}
	pruned := automaton.Prune(a)
	prog.phase("pruned", "states", a.GetNumStates(), "reachable", pruned.GetNumStates())

	results, err := c.compare(cmd, pruned, opts.maxTableStates)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		printStats(w, fmt.Sprintf("%-13s", r.alg), fmt.Sprintf("%d states", r.partition.GetNumBlocks()), r.elapsed.String())
	}
	for _, r := range results[1:] {
		if !results[0].partition.Equivalent(r.partition) {
			printError(w, "%s and %s disagree", results[0].alg, r.alg)
			return errors.Errorf("%s and %s produced different partitions", results[0].alg, r.alg)
		}
	}
	prog.done("compared", "algorithms", len(results))
	printSuccess(w, "All minimizers agree on %s: %d states %s %d states",
		opts.input, a.GetNumStates(), iconArrow, results[0].partition.GetNumBlocks())
	return nil
}

func (c *CLI) compare(cmd *cobra.Command, pruned *automaton.Automaton, maxTableStates int) ([]comparison, error) {
	var results []comparison
	for _, alg := range automaton.Algorithms {
		if err := cmd.Context().Err(); err != nil {
			return nil, err
		}
		if alg == automaton.AlgorithmTableFilling && maxTableStates > 0 && pruned.GetNumStates() > maxTableStates {
			c.Logger.Warn("skipping table-filling", "states", pruned.GetNumStates(), "max", maxTableStates)
			continue
		}
		start := time.Now()
		p := alg.Refiner().Refine(pruned)
		r := comparison{alg: alg, partition: p, elapsed: time.Since(start).Round(time.Microsecond)}
		c.Logger.Debug("refined", "algorithm", alg, "blocks", p.GetNumBlocks(), "elapsed", r.elapsed)
		results = append(results, r)
	}
	return results, nil
}
