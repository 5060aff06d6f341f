package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/dfajson"
)

const fourStates = `[
  {"state_name": "A", "transitions": [{"input": "0", "target_state": "B"}, {"input": "1", "target_state": "C"}], "is_start": true},
  {"state_name": "B", "transitions": [{"input": "0", "target_state": "D"}, {"input": "1", "target_state": "D"}]},
  {"state_name": "C", "transitions": [{"input": "0", "target_state": "D"}, {"input": "1", "target_state": "D"}]},
  {"state_name": "D", "transitions": [{"input": "0", "target_state": "D"}, {"input": "1", "target_state": "D"}], "is_end": true},
  {"state_name": "U", "transitions": [{"input": "0", "target_state": "A"}]}
]`

// execute runs the root command with args, returning stdout and the log output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeInput(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestMinimizeCommands(t *testing.T) {
	for _, m := range minimizers {
		t.Run(m.alg.String(), func(t *testing.T) {
			input := writeInput(t, fourStates)
			output := filepath.Join(t.TempDir(), "out.json")

			stdout, logs, err := execute(t, m.alg.String(), input, output)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Minimized "+input)
			assert.Contains(t, stdout, output)
			assert.Contains(t, logs, "pruned")
			assert.Contains(t, logs, "reconstructed")

			got, err := dfajson.ImportJSON(output)
			require.NoError(t, err)
			assert.Equal(t, 3, got.GetNumStates())
			assert.Equal(t, "{B,C}", got.GetStateName(1))
		})
	}
}

func TestMinimizeDefaultPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(defaultInput, []byte(fourStates), 0o644))

	_, _, err := execute(t, "moore")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "output_moore.json"))
}

func TestMinimizeErrors(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")

	t.Run("missing input", func(t *testing.T) {
		_, _, err := execute(t, "hopcroft", filepath.Join(dir, "missing.json"), output)
		require.Error(t, err)
		assert.True(t, automaton.IsCode(err, automaton.CodeInputUnavailable))
		assert.NoFileExists(t, output)
	})

	t.Run("malformed input", func(t *testing.T) {
		input := writeInput(t, `[{"is_start": true}]`)
		_, _, err := execute(t, "table-filling", input, output)
		require.Error(t, err)
		assert.True(t, automaton.IsCode(err, automaton.CodeMalformedInput))
		assert.NoFileExists(t, output)
	})

	t.Run("no start state", func(t *testing.T) {
		input := writeInput(t, `[{"state_name": "A", "is_end": true}]`)
		_, _, err := execute(t, "hopcroft", input, output)
		require.Error(t, err)
		assert.True(t, automaton.IsCode(err, automaton.CodeNoStartState))
		assert.NoFileExists(t, output)

		_, logs, err := execute(t, "hopcroft", "--allow-empty", input, output)
		require.NoError(t, err)
		assert.Contains(t, logs, "no start state")
		got, err := dfajson.ImportJSON(output)
		require.NoError(t, err)
		assert.Equal(t, 0, got.GetNumStates())
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := execute(t, "moore", "a", "b", "c")
		assert.Error(t, err)
	})
}

func TestErrorReportedOnce(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	noStart := writeInput(t, `[{"state_name": "A", "is_end": true}]`)

	tests := []struct {
		name string
		args []string
		code automaton.Code
	}{
		{"missing input", []string{"hopcroft", missing, filepath.Join(t.TempDir(), "out.json")}, automaton.CodeInputUnavailable},
		{"no start state", []string{"moore", noStart, filepath.Join(t.TempDir(), "out.json")}, automaton.CodeNoStartState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr, logs bytes.Buffer
			root := New(&logs, LogInfo).RootCommand()
			root.SetOut(&stdout)
			root.SetErr(&stderr)
			root.SetArgs(tt.args)

			err := root.ExecuteContext(context.Background())
			require.Error(t, err)
			assert.True(t, automaton.IsCode(err, tt.code))

			// The caller of the command tree is the only place the error is printed.
			fmt.Fprintln(&stderr, err)
			assert.Equal(t, 1, strings.Count(stderr.String(), string(tt.code)), stderr.String())
			assert.NotContains(t, stderr.String(), "Error:")
			assert.Empty(t, stdout.String())
		})
	}
}

func TestCompareCommand(t *testing.T) {
	input := writeInput(t, fourStates)

	stdout, _, err := execute(t, "compare", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "All minimizers agree")
	assert.Contains(t, stdout, "table-filling")

	stdout, logs, err := execute(t, "compare", "--max-table-states", "2", input)
	require.NoError(t, err)
	assert.Contains(t, logs, "skipping table-filling")
	assert.NotContains(t, stdout, "table-filling")
}

func TestExpandCommand(t *testing.T) {
	input := writeInput(t, fourStates)
	output := filepath.Join(t.TempDir(), "expanded.json")

	stdout, _, err := execute(t, "expand", "--target", "60", "--seed", "3", input, output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Expanded")

	expanded, err := dfajson.ImportJSON(output)
	require.NoError(t, err)
	assert.Equal(t, 60, expanded.GetNumStates())

	m, err := automaton.MinimizeWith(expanded, automaton.AlgorithmHopcroft)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GetNumStates())

	_, _, err = execute(t, "expand", "--target", "0", input, output)
	assert.True(t, automaton.IsCode(err, automaton.CodeInvalidArgument))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "generate", "--dir", dir, "--seed", "1", "--targets", "20,40")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated minimal DFA")

	minimal, err := dfajson.ImportJSON(filepath.Join(dir, minimalFile))
	require.NoError(t, err)
	assert.LessOrEqual(t, minimal.GetNumStates(), 5)
	assert.Equal(t, 4, minimal.GetNumSymbols())

	for _, target := range []int{20, 40} {
		path := filepath.Join(dir, map[int]string{20: "20_states_dfa.json", 40: "40_states_dfa.json"}[target])
		expanded, err := dfajson.ImportJSON(path)
		require.NoError(t, err)
		assert.Equal(t, target, expanded.GetNumStates())

		m, err := automaton.MinimizeWith(expanded, automaton.AlgorithmMoore)
		require.NoError(t, err)
		assert.Equal(t, minimal.GetNumStates(), m.GetNumStates())
	}

	raw, err := os.ReadFile(filepath.Join(dir, "20_states_dfa.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"expanded_dfa"`)
}

func TestGenerateConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generate.toml")

	t.Run("file values over defaults", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("seed = 7\nbase_states = 3\ntargets = [10]\n"), 0o644))
		cfg, seeded, err := loadGenerateConfig(path)
		require.NoError(t, err)
		assert.True(t, seeded)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, 3, cfg.BaseStates)
		assert.Equal(t, 4, cfg.Alphabet)
		assert.Equal(t, []int{10}, cfg.Targets)
	})

	t.Run("flags override the file", func(t *testing.T) {
		out := filepath.Join(dir, "out")
		require.NoError(t, os.WriteFile(path, []byte("seed = 7\ntargets = [10]\ndir = \"elsewhere\"\n"), 0o644))
		_, _, err := execute(t, "generate", "--config", path, "--dir", out, "--targets", "12")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(out, "12_states_dfa.json"))
		assert.NoFileExists(t, filepath.Join(out, "10_states_dfa.json"))
	})

	t.Run("unknown key", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("states = 3\n"), 0o644))
		_, _, err := loadGenerateConfig(path)
		assert.True(t, automaton.IsCode(err, automaton.CodeMalformedInput))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := loadGenerateConfig(filepath.Join(dir, "missing.toml"))
		assert.True(t, automaton.IsCode(err, automaton.CodeInputUnavailable))
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg := defaultGenerateConfig()
		cfg.Alphabet = 0
		assert.True(t, automaton.IsCode(cfg.validate(), automaton.CodeInvalidArgument))
	})
}

func TestRenderCommand(t *testing.T) {
	input := writeInput(t, fourStates)
	output := filepath.Join(t.TempDir(), "dfa.dot")

	_, _, err := execute(t, "render", input, output)
	require.NoError(t, err)

	dot, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph DFA")
	assert.Contains(t, string(dot), `"D" [shape=doublecircle];`)
}
