package automaton

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/queues/arrayqueue"
)

// TableFilling Pairwise distinguishability marking.
//
// A pair of states is marked when exactly one of them accepts. Full passes over the unmarked pairs then
// mark (p, q) if, for some symbol, exactly one of them has a transition, or both have one into a
// distinct pair that is already marked. Once a pass marks nothing, unmarked pairs are exactly the
// equivalent ones and the blocks are the connected components of the unmarked relation.
//
// The marking table takes n(n-1)/2 bits.
type TableFilling struct{}

// pairTable Triangular bit matrix over unordered pairs of distinct states.
type pairTable struct {
	bits *bitset.BitSet
}

func newPairTable(n int) *pairTable {
	return &pairTable{bits: bitset.New(uint(n * (n - 1) / 2))}
}

func pairIndex(p, q int) uint {
	if p > q {
		p, q = q, p
	}
	return uint(q*(q-1)/2 + p)
}

func (t *pairTable) marked(p, q int) bool {
	return t.bits.Test(pairIndex(p, q))
}

func (t *pairTable) mark(p, q int) {
	t.bits.Set(pairIndex(p, q))
}

func (TableFilling) Refine(a *Automaton) *Partition {
	n := a.GetNumStates()
	if n == 0 {
		return NewPartitionFromBlocks(0, nil)
	}

	table := fillTable(a)

	// Connected components of the unmarked relation, numbered by smallest member.
	assign := filled(n, -1)
	workList := arrayqueue.New()
	component := 0
	for s := 0; s < n; s++ {
		if assign[s] >= 0 {
			continue
		}
		assign[s] = component
		workList.Enqueue(s)
		for !workList.Empty() {
			v, _ := workList.Dequeue()
			u := v.(int)
			for w := 0; w < n; w++ {
				if assign[w] < 0 && !table.marked(u, w) {
					assign[w] = component
					workList.Enqueue(w)
				}
			}
		}
		component++
	}

	return NewPartitionFromAssignment(assign)
}

// fillTable Runs the marking to its fixed point.
func fillTable(a *Automaton) *pairTable {
	n, k := a.GetNumStates(), a.numSymbols
	table := newPairTable(n)

	for q := 1; q < n; q++ {
		for p := 0; p < q; p++ {
			if a.IsAccept(p) != a.IsAccept(q) {
				table.mark(p, q)
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for q := 1; q < n; q++ {
			rowQ := a.row(q)
			for p := 0; p < q; p++ {
				if table.marked(p, q) {
					continue
				}
				rowP := a.row(p)
				for c := 0; c < k; c++ {
					tp, tq := rowP[c], rowQ[c]
					if (tp == NoTransition) != (tq == NoTransition) ||
						(tp != NoTransition && tp != tq && table.marked(tp, tq)) {
						table.mark(p, q)
						changed = true
						break
					}
				}
			}
		}
	}
	return table
}
