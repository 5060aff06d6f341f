package cli

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/dfajson"
)

const (
	defaultExpandOutput = "output_expanded.json"
	defaultExpandTarget = 1000
)

type expandOpts struct {
	input  string
	output string
	target int
	seed   uint64
}

func (c *CLI) expandCommand() *cobra.Command {
	opts := expandOpts{target: defaultExpandTarget}

	cmd := &cobra.Command{
		Use:   "expand [input] [output]",
		Short: "Grow a DFA by splitting states without changing its language",
		Long: `Repeatedly clones a random state and redirects about half of its incoming transitions
to the clone until the DFA has --target states. Minimizing the result gives back the minimal
form of the input.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input, opts.output = inputOutput(args, defaultExpandOutput)
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			return c.runExpand(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.target, "target", opts.target, "number of states of the expanded DFA")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default: time-based)")
	return cmd
}

func (c *CLI) runExpand(cmd *cobra.Command, opts expandOpts) error {
	if opts.target <= 0 {
		return automaton.NewError(automaton.CodeInvalidArgument, "--target must be positive, got %d", opts.target)
	}
	prog := newProgress(c.Logger)

	a, err := c.loadAutomaton(cmd.Context(), opts.input, false)
	if err != nil {
		return err
	}
	prog.phase("loaded", "states", a.GetNumStates())

	expanded, err := automaton.Expand(a, opts.target, newRand(opts.seed))
	if err != nil {
		return errors.Wrapf(err, "expand %s", opts.input)
	}
	prog.phase("expanded", "states", expanded.GetNumStates(), "seed", opts.seed)

	if err := dfajson.ExportJSON(expanded, opts.output); err != nil {
		return err
	}
	prog.done("expanded", "states", expanded.GetNumStates())

	printSuccess(cmd.OutOrStdout(), "Expanded %s %s %s: %d states %s %d states",
		opts.input, iconArrow, opts.output, a.GetNumStates(), iconArrow, expanded.GetNumStates())
	return nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
