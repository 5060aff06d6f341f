package automaton

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Reconstruct
// Builds the quotient automaton of a by the partition p: one state per block, labelled with the
// sorted member labels as "{a,b,c}". New states are ordered by their smallest member, so equivalent
// partitions yield identical automata whichever algorithm produced them. A block starts iff it holds
// the start state and accepts iff its members accept; transitions are taken from its first member.
func Reconstruct(a *Automaton, p *Partition) (*Automaton, error) {
	if err := p.Validate(a); err != nil {
		return nil, errors.Wrap(err, "reconstruct")
	}

	n, k := a.GetNumStates(), a.numSymbols

	// Order blocks by smallest member.
	order := make([]int, 0, p.GetNumBlocks())
	newID := filled(p.GetNumBlocks(), -1)
	for s := 0; s < n; s++ {
		b := p.BlockOf(s)
		if newID[b] < 0 {
			newID[b] = len(order)
			order = append(order, b)
		}
	}

	names := make([]string, len(order))
	table := filled(len(order)*k, NoTransition)
	accept := bitset.New(uint(len(order)))
	start := NoState
	for id, b := range order {
		block := p.Block(b)
		names[id] = blockLabel(a, block)
		rep := block[0]
		accept.SetTo(uint(id), a.IsAccept(rep))
		if a.HasStart() && p.BlockOf(a.start) == b {
			start = id
		}
		for c, dest := range a.row(rep) {
			if dest != NoTransition {
				table[id*k+c] = newID[p.BlockOf(dest)]
			}
		}
	}

	return newAutomaton(names, a.symbolNames, table, accept, start), nil
}

func blockLabel(a *Automaton, block []int) string {
	labels := make([]string, len(block))
	for i, s := range block {
		labels[i] = a.GetStateName(s)
	}
	slices.Sort(labels)
	return "{" + strings.Join(labels, ",") + "}"
}
