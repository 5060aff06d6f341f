package automaton

import "slices"

// Moore Iterative signature refinement.
//
// Accepting states start in block 1 and all others in block 0. Each round gives every state the
// signature (own block, block of the target on each symbol in symbol order, -1 where undefined) and
// renumbers blocks by first occurrence of each signature in state order. The rounds stop once an
// assignment repeats, at most n rounds.
type Moore struct{}

// signature Block of a state followed by the block reached on each symbol.
type signature []int

func (s signature) Hash() uint64 {
	return mixInts(s)
}

func (s signature) Equals(other Hashable) bool {
	o, ok := other.(signature)
	return ok && slices.Equal(s, o)
}

func (m Moore) Refine(a *Automaton) *Partition {
	p, _ := m.RefineWithRounds(a)
	return p
}

// RefineWithRounds Refine, also reporting how many refinement rounds ran (the last one being the
// round that found nothing to split).
func (Moore) RefineWithRounds(a *Automaton) (*Partition, int) {
	n, k := a.GetNumStates(), a.numSymbols
	if n == 0 {
		return NewPartitionFromBlocks(0, nil), 0
	}

	group := make([]int, n)
	for s := 0; s < n; s++ {
		if a.IsAccept(s) {
			group[s] = 1
		}
	}

	next := make([]int, n)
	rounds := 0
	for {
		rounds++
		ids := NewHashMap[int](WithCapacity(2 * len(group)))
		for s := 0; s < n; s++ {
			sig := make(signature, k+1)
			sig[0] = group[s]
			for c, dest := range a.row(s) {
				if dest == NoTransition {
					sig[c+1] = NoTransition
				} else {
					sig[c+1] = group[dest]
				}
			}
			next[s], _ = ids.GetOrSet(sig, ids.Size())
		}

		if slices.Equal(group, next) {
			break
		}
		group, next = next, group
	}

	return NewPartitionFromAssignment(group), rounds
}
