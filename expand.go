package automaton

import (
	"math/rand/v2"
	"slices"
	"strconv"
)

// Expand
// Grows a to exactly target states without changing its language, by repeated state splitting: a
// uniformly chosen state u gets a clone u' with the same outgoing transitions and acceptance, and every
// transition already entering u is redirected to u' with probability ½. Existing state ids are never
// renumbered; clones are appended. The caller seeds rng, so an expansion is reproducible.
//
// If target does not exceed the current size, a is returned unchanged.
func Expand(a *Automaton, target int, rng *rand.Rand) (*Automaton, error) {
	n, k := a.GetNumStates(), a.numSymbols
	if target <= n {
		return a, nil
	}
	if n == 0 {
		return nil, NewError(CodeInvalidArgument, "cannot expand an automaton without states")
	}
	if rng == nil {
		return nil, NewError(CodeInvalidArgument, "expand needs a random source")
	}

	table := make([]int, n*k, target*k)
	copy(table, a.transitions)
	accept := a.getAcceptStates()
	names := make([]string, n, target)
	copy(names, a.stateNames)
	used := make(map[string]struct{}, target)
	for _, name := range names {
		used[name] = struct{}{}
	}

	// incoming[v] lists the table slots whose destination is v.
	incoming := make([][]int, n, target)
	for slot, dest := range table {
		if dest != NoTransition {
			incoming[dest] = append(incoming[dest], slot)
		}
	}

	for cur := n; cur < target; cur++ {
		u := rng.IntN(cur)
		table = append(table, table[u*k:(u+1)*k]...)

		var kept, moved []int
		for _, slot := range incoming[u] {
			if rng.IntN(2) == 1 {
				table[slot] = cur
				moved = append(moved, slot)
			} else {
				kept = append(kept, slot)
			}
		}
		incoming[u] = kept
		incoming = append(incoming, moved)

		for c := 0; c < k; c++ {
			if dest := table[cur*k+c]; dest != NoTransition {
				incoming[dest] = append(incoming[dest], cur*k+c)
			}
		}
		accept.SetTo(uint(cur), accept.Test(uint(u)))
		names = append(names, cloneLabel(names[u], cur, used))
	}

	return newAutomaton(names, slices.Clone(a.symbolNames), table, accept, a.start), nil
}

func cloneLabel(base string, id int, used map[string]struct{}) string {
	label := base + "." + strconv.Itoa(id)
	for {
		if _, ok := used[label]; !ok {
			used[label] = struct{}{}
			return label
		}
		label += "'"
	}
}
