package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/geange/dfamin/render"
)

const defaultRenderOutput = "output.dot"

type renderOpts struct {
	input      string
	output     string
	allowEmpty bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [input] [output]",
		Short: "Draw a DFA with Graphviz",
		Long: `Writes the DFA in input as a Graphviz graph. An output path ending in .svg is rendered
to SVG, anything else receives the DOT source.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input, opts.output = inputOutput(args, defaultRenderOutput)
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.allowEmpty, "allow-empty", false, "accept a DFA without start state")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	prog := newProgress(c.Logger)
	a, err := c.loadAutomaton(cmd.Context(), opts.input, opts.allowEmpty)
	if err != nil {
		return err
	}

	data := []byte(render.ToDOT(a))
	if strings.EqualFold(filepath.Ext(opts.output), ".svg") {
		if data, err = render.RenderSVG(cmd.Context(), string(data)); err != nil {
			return err
		}
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", opts.output)
	}
	prog.done("rendered", "states", a.GetNumStates(), "bytes", len(data))

	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered %s", opts.input)
	printFile(w, opts.output)
	return nil
}
