package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/dfamin"
)

func sample(t *testing.T) *automaton.Automaton {
	b := automaton.NewBuilder()
	p, q := b.State("p"), b.State("q")
	require.NoError(t, b.AddTransitionLabel(p, "b", q))
	require.NoError(t, b.AddTransitionLabel(p, "a", q))
	require.NoError(t, b.AddTransitionLabel(q, "a", q))
	b.SetStart(p)
	b.SetAccept(q, true)
	return b.Finish()
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t))

	assert.True(t, strings.HasPrefix(dot, "digraph DFA {\n  rankdir=LR;"))
	assert.Contains(t, dot, `__start -> "p";`)
	assert.Contains(t, dot, `"p" [style=filled, fillcolor=lightblue];`)
	assert.Contains(t, dot, `"q" [shape=doublecircle];`)
	assert.Contains(t, dot, `"p" -> "q" [label="a,b"];`)
	assert.Contains(t, dot, `"q" -> "q" [label="a"];`)
	assert.Equal(t, 1, strings.Count(dot, `"p" -> "q"`))
}

func TestToDOTWithoutStart(t *testing.T) {
	dot := ToDOT(automaton.NewEmptyAutomaton("a"))
	assert.NotContains(t, dot, "__start")
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}
