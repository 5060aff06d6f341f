package automaton

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/queues/arrayqueue"
)

// Prune
// Returns a new automaton restricted to the states reachable from the start state. Reachable states
// keep their relative order, the accept set is restricted to them and the alphabet is kept whole.
// An automaton without a start state prunes to the empty automaton.
func Prune(a *Automaton) *Automaton {
	if !a.HasStart() {
		return NewEmptyAutomaton(a.symbolNames...)
	}

	live := getLiveStatesFromInitial(a)
	if int(live.Count()) == a.GetNumStates() {
		return a
	}

	numStates := a.GetNumStates()
	mp := filled(numStates, NoState)
	names := make([]string, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		mp[i] = len(names)
		names = append(names, a.stateNames[i])
	}

	k := a.numSymbols
	table := filled(len(names)*k, NoTransition)
	accept := bitset.New(uint(len(names)))
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		s := mp[i]
		accept.SetTo(uint(s), a.IsAccept(int(i)))
		for c, dest := range a.row(int(i)) {
			if dest != NoTransition {
				table[s*k+c] = mp[dest]
			}
		}
	}

	return newAutomaton(names, a.symbolNames, table, accept, mp[a.start])
}

// getLiveStatesFromInitial Breadth-first closure of the start state.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if !a.HasStart() {
		return live
	}

	workList := arrayqueue.New()
	live.Set(uint(a.start))
	workList.Enqueue(a.start)

	for !workList.Empty() {
		v, _ := workList.Dequeue()
		for _, dest := range a.row(v.(int)) {
			if dest != NoTransition && !live.Test(uint(dest)) {
				live.Set(uint(dest))
				workList.Enqueue(dest)
			}
		}
	}

	return live
}

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if !a.HasStart() {
		return true
	}
	if a.IsAccept(a.start) {
		return false
	}
	live := getLiveStatesFromInitial(a)
	return !live.Intersection(a.isAccept).Any()
}

// Distinguish
// Returns a shortest word separating states p and q, or false if they are equivalent. A word w
// separates them if after reading w exactly one of them is in an accept state, or if w ends in a
// symbol on which exactly one of them has a transition. Undefined transitions are therefore
// observable, the same notion of equivalence the minimizers use.
func Distinguish(a *Automaton, p, q int) ([]int, bool) {
	if p == q {
		return nil, false
	}

	type pair struct{ p, q int }
	type visit struct {
		prev   pair
		symbol int
	}

	k := a.numSymbols
	start := pair{p, q}
	seen := map[pair]visit{start: {symbol: -1}}
	workList := arrayqueue.New()
	workList.Enqueue(start)

	path := func(end pair, last int) []int {
		var word []int
		if last >= 0 {
			word = append(word, last)
		}
		for cur := end; cur != start; {
			v := seen[cur]
			word = append(word, v.symbol)
			cur = v.prev
		}
		for i, j := 0, len(word)-1; i < j; i, j = i+1, j-1 {
			word[i], word[j] = word[j], word[i]
		}
		return word
	}

	for !workList.Empty() {
		v, _ := workList.Dequeue()
		cur := v.(pair)
		if a.IsAccept(cur.p) != a.IsAccept(cur.q) {
			return path(cur, -1), true
		}
		for c := 0; c < k; c++ {
			tp, tq := a.Step(cur.p, c), a.Step(cur.q, c)
			if (tp == NoTransition) != (tq == NoTransition) {
				return path(cur, c), true
			}
			if tp == NoTransition || tp == tq {
				continue
			}
			if tp > tq {
				tp, tq = tq, tp
			}
			next := pair{tp, tq}
			if _, ok := seen[next]; !ok {
				seen[next] = visit{prev: cur, symbol: c}
				workList.Enqueue(next)
			}
		}
	}
	return nil, false
}
