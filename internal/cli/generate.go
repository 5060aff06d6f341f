package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/dfajson"
)

const (
	minimalFile = "minimal_dfa.json"
	minimalKey  = "dfa_minimal"
	expandedKey = "expanded_dfa"
)

// generateConfig describes a benchmark set: one random minimal DFA and an equivalent expansion per
// target size. It can be read from a TOML file:
//
//	seed = 7
//	base_states = 5
//	alphabet = 4
//	targets = [1000, 10000, 50000]
//	dir = "bench"
type generateConfig struct {
	Seed       uint64 `toml:"seed"`
	BaseStates int    `toml:"base_states"`
	Alphabet   int    `toml:"alphabet"`
	Targets    []int  `toml:"targets"`
	Dir        string `toml:"dir"`
}

func defaultGenerateConfig() generateConfig {
	return generateConfig{
		BaseStates: 5,
		Alphabet:   4,
		Targets:    []int{1000, 10000, 50000},
		Dir:        ".",
	}
}

// loadGenerateConfig reads path over the defaults. Keys missing from the file keep their default.
func loadGenerateConfig(path string) (generateConfig, bool, error) {
	cfg := defaultGenerateConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false, automaton.WrapError(automaton.CodeInputUnavailable, err, "open %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, false, automaton.WrapError(automaton.CodeMalformedInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, false, automaton.NewError(automaton.CodeMalformedInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, md.IsDefined("seed"), nil
}

func (cfg generateConfig) validate() error {
	if cfg.BaseStates <= 0 {
		return automaton.NewError(automaton.CodeInvalidArgument, "base_states must be positive, got %d", cfg.BaseStates)
	}
	if cfg.Alphabet <= 0 {
		return automaton.NewError(automaton.CodeInvalidArgument, "alphabet must be positive, got %d", cfg.Alphabet)
	}
	for _, t := range cfg.Targets {
		if t <= 0 {
			return automaton.NewError(automaton.CodeInvalidArgument, "target sizes must be positive, got %d", t)
		}
	}
	return nil
}

func (c *CLI) generateCommand() *cobra.Command {
	var configPath string
	flags := defaultGenerateConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random minimal DFA and large equivalent versions of it",
		Long: `Generates a random complete DFA, minimizes it with Hopcroft's algorithm and writes it to
` + minimalFile + `. Each target size then gets an equivalent expansion written to
<target>_states_dfa.json. Flags override the values of --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultGenerateConfig()
			seeded := false
			if configPath != "" {
				var err error
				if cfg, seeded, err = loadGenerateConfig(configPath); err != nil {
					return err
				}
			}

			set := cmd.Flags().Changed
			if set("seed") {
				cfg.Seed, seeded = flags.Seed, true
			}
			if set("base-states") {
				cfg.BaseStates = flags.BaseStates
			}
			if set("alphabet") {
				cfg.Alphabet = flags.Alphabet
			}
			if set("targets") {
				cfg.Targets = flags.Targets
			}
			if set("dir") {
				cfg.Dir = flags.Dir
			}
			if !seeded {
				cfg.Seed = uint64(time.Now().UnixNano())
			}
			return c.runGenerate(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with generator settings")
	cmd.Flags().Uint64Var(&flags.Seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().IntVar(&flags.BaseStates, "base-states", flags.BaseStates, "states of the random base DFA")
	cmd.Flags().IntVar(&flags.Alphabet, "alphabet", flags.Alphabet, "number of input symbols")
	cmd.Flags().IntSliceVar(&flags.Targets, "targets", flags.Targets, "state counts of the expanded DFAs")
	cmd.Flags().StringVar(&flags.Dir, "dir", flags.Dir, "output directory")
	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, cfg generateConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", cfg.Dir)
	}
	c.Logger.Debug("generating", "seed", cfg.Seed, "base_states", cfg.BaseStates, "alphabet", cfg.Alphabet, "targets", cfg.Targets)

	w := cmd.OutOrStdout()
	rng := newRand(cfg.Seed)
	prog := newProgress(c.Logger)

	base, err := automaton.RandomAutomaton(cfg.BaseStates, cfg.Alphabet, rng)
	if err != nil {
		return err
	}
	minimal, err := automaton.MinimizeWith(base, automaton.AlgorithmHopcroft)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Dir, minimalFile)
	if err := dfajson.ExportJSONWrapped(minimal, minimalKey, path); err != nil {
		return err
	}
	prog.phase("minimal", "states", minimal.GetNumStates(), "path", path)
	printSuccess(w, "Generated minimal DFA: %d states", minimal.GetNumStates())
	printFile(w, path)

	for _, target := range cfg.Targets {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		expanded, err := automaton.Expand(minimal, target, rng)
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.Dir, fmt.Sprintf("%d_states_dfa.json", target))
		if err := dfajson.ExportJSONWrapped(expanded, expandedKey, path); err != nil {
			return err
		}
		prog.phase("expanded", "states", expanded.GetNumStates(), "path", path)
		printSuccess(w, "Generated equivalent DFA: %d states", expanded.GetNumStates())
		printFile(w, path)
	}

	prog.done("generated", "files", len(cfg.Targets)+1, "seed", cfg.Seed)
	return nil
}
