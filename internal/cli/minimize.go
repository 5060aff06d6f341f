package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/dfajson"
)

// minimizer ties an algorithm to its subcommand.
type minimizer struct {
	alg           automaton.Algorithm
	defaultOutput string
	short         string
}

var minimizers = []minimizer{
	{automaton.AlgorithmHopcroft, "output_hopcroft.json", "Minimize a DFA with Hopcroft's partition refinement"},
	{automaton.AlgorithmMoore, "output_moore.json", "Minimize a DFA with Moore's signature refinement"},
	{automaton.AlgorithmTableFilling, "output_table_filling.json", "Minimize a DFA with the table-filling algorithm"},
}

// minimizeOpts holds the command-line flags shared by the minimizer commands.
type minimizeOpts struct {
	input      string
	output     string
	allowEmpty bool // write the empty automaton instead of failing on a missing start state
}

func (c *CLI) minimizeCommand(m minimizer) *cobra.Command {
	var opts minimizeOpts

	cmd := &cobra.Command{
		Use:   m.alg.String() + " [input] [output]",
		Short: m.short,
		Long: fmt.Sprintf(`Reads the DFA in input (default %s), removes unreachable states, merges
indistinguishable ones and writes the minimal DFA to output (default %s).`, defaultInput, m.defaultOutput),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input, opts.output = inputOutput(args, m.defaultOutput)
			return c.runMinimize(cmd, m.alg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.allowEmpty, "allow-empty", false, "write an empty DFA when the input has no start state")
	return cmd
}

func (c *CLI) runMinimize(cmd *cobra.Command, alg automaton.Algorithm, opts minimizeOpts) error {
	prog := newProgress(c.Logger)

	a, err := c.loadAutomaton(cmd.Context(), opts.input, opts.allowEmpty)
	if err != nil {
		return err
	}
	prog.phase("loaded", "states", a.GetNumStates(), "symbols", a.GetNumSymbols())

	m, err := c.minimize(cmd.Context(), a, alg, prog)
	if err != nil {
		return err
	}

	if err := dfajson.ExportJSON(m, opts.output); err != nil {
		return err
	}
	prog.phase("exported", "path", opts.output)
	prog.done("minimized", "algorithm", alg, "states", m.GetNumStates())

	printMinimized(cmd.OutOrStdout(), opts.input, opts.output, a.GetNumStates(), m.GetNumStates())
	return nil
}

// loadAutomaton imports path and rejects a DFA without a start state unless allowEmpty is set.
func (c *CLI) loadAutomaton(ctx context.Context, path string, allowEmpty bool) (*automaton.Automaton, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := dfajson.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	if !a.HasStart() {
		if !allowEmpty {
			return nil, automaton.NewError(automaton.CodeNoStartState, "%s: no state has is_start set", path)
		}
		c.Logger.Warn("no start state, the minimal DFA is empty", "path", path)
	}
	return a, nil
}

// minimize runs the three phases of a minimization, logging each.
func (c *CLI) minimize(ctx context.Context, a *automaton.Automaton, alg automaton.Algorithm, prog *progress) (*automaton.Automaton, error) {
	pruned := automaton.Prune(a)
	prog.phase("pruned", "reachable", pruned.GetNumStates(), "dropped", a.GetNumStates()-pruned.GetNumStates())
	if pruned.GetNumStates() == 0 {
		return pruned, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p *automaton.Partition
	if alg == automaton.AlgorithmMoore {
		var rounds int
		p, rounds = automaton.Moore{}.RefineWithRounds(pruned)
		prog.phase("refined", "blocks", p.GetNumBlocks(), "rounds", rounds)
	} else {
		p = alg.Refiner().Refine(pruned)
		prog.phase("refined", "blocks", p.GetNumBlocks())
	}

	m, err := automaton.Reconstruct(pruned, p)
	if err != nil {
		return nil, err
	}
	prog.phase("reconstructed", "states", m.GetNumStates(), "transitions", m.GetNumTransitions())
	return m, nil
}
