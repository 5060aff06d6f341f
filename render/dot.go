// Package render draws automata as Graphviz graphs.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"

	automaton "github.com/geange/dfamin"
)

const startNode = "__start"

// ToDOT converts an automaton to Graphviz DOT format. Accepting states are drawn as double circles,
// the start state is filled and pointed at by an invisible node, and parallel transitions between
// the same pair of states share one edge labelled with their sorted inputs.
func ToDOT(a *automaton.Automaton) string {
	var buf bytes.Buffer
	buf.WriteString("digraph DFA {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontsize=14];\n")
	buf.WriteString("\n")

	if a.HasStart() {
		fmt.Fprintf(&buf, "  %s [shape=point, style=invis];\n", startNode)
	}
	for s := 0; s < a.GetNumStates(); s++ {
		fmt.Fprintf(&buf, "  %q [%s];\n", a.GetStateName(s), strings.Join(stateAttrs(a, s), ", "))
	}

	buf.WriteString("\n")
	if a.HasStart() {
		fmt.Fprintf(&buf, "  %s -> %q;\n", startNode, a.GetStateName(a.GetStart()))
	}
	for s := 0; s < a.GetNumStates(); s++ {
		inputs := make(map[int][]string)
		var targets []int
		for c := 0; c < a.GetNumSymbols(); c++ {
			dest := a.Step(s, c)
			if dest == automaton.NoTransition {
				continue
			}
			if _, ok := inputs[dest]; !ok {
				targets = append(targets, dest)
			}
			inputs[dest] = append(inputs[dest], a.GetSymbolName(c))
		}
		slices.Sort(targets)
		for _, dest := range targets {
			labels := inputs[dest]
			slices.Sort(labels)
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", a.GetStateName(s), a.GetStateName(dest), strings.Join(labels, ","))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func stateAttrs(a *automaton.Automaton, s int) []string {
	var attrs []string
	if a.IsAccept(s) {
		attrs = append(attrs, "shape=doublecircle")
	}
	if a.HasStart() && a.GetStart() == s {
		attrs = append(attrs, "style=filled", "fillcolor=lightblue")
	}
	if attrs == nil {
		attrs = append(attrs, "shape=circle")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}
