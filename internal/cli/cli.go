// Package cli implements the dfamin command-line interface.
//
// Every minimizer has its own subcommand taking an input document and an optional output path:
//
//	dfamin hopcroft [input] [output]
//	dfamin moore [input] [output]
//	dfamin table-filling [input] [output]
//
// The remaining commands compare the three minimizers, blow a DFA up into an equivalent larger one,
// generate benchmark inputs and draw a DFA with Graphviz. All commands support --verbose (-v) for
// debug-level logging of the individual phases.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/geange/dfamin/internal/buildinfo"
)

const (
	appName = "dfamin"

	// defaultInput is read when a command is given no input path.
	defaultInput = "input.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "dfamin minimizes deterministic finite automata",
		Long:         `dfamin reads a DFA from a JSON document, minimizes it with Hopcroft's, Moore's or the table-filling algorithm and writes the minimal DFA back as JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	for _, alg := range minimizers {
		root.AddCommand(c.minimizeCommand(alg))
	}
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())

	return root
}

// inputOutput resolves the optional [input] [output] positional arguments.
func inputOutput(args []string, defaultOutput string) (string, string) {
	input, output := defaultInput, defaultOutput
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	return input, output
}
