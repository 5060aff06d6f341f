package automaton

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Builder Interns external state and symbol labels to dense ids while an automaton is being decoded.
// Labels are assigned ids in first-seen order. A Builder is discarded once Finish has produced the
// Automaton; calling any method afterwards panics.
type Builder struct {
	stateNames  []string
	stateIndex  map[string]int
	symbolNames []string
	symbolIndex map[string]int

	start    int
	isAccept *bitset.BitSet

	// Holds source, symbol, dest for each transition.
	transitions []int

	// (source, symbol) -> dest, used to reject nondeterministic input.
	defined map[[2]int]int

	finished bool
}

func NewBuilder() *Builder {
	return &Builder{
		stateIndex:  make(map[string]int),
		symbolIndex: make(map[string]int),
		start:       NoState,
		isAccept:    bitset.New(2),
		defined:     make(map[[2]int]int),
	}
}

func (r *Builder) checkOpen() {
	if r.finished {
		panic("automaton: builder used after Finish")
	}
}

// State Returns the state interned for name, creating it if it has not been seen yet.
func (r *Builder) State(name string) int {
	r.checkOpen()
	if id, ok := r.stateIndex[name]; ok {
		return id
	}
	id := len(r.stateNames)
	r.stateNames = append(r.stateNames, name)
	r.stateIndex[name] = id
	return id
}

// Symbol Returns the symbol interned for label, creating it if it has not been seen yet.
func (r *Builder) Symbol(label string) int {
	r.checkOpen()
	if id, ok := r.symbolIndex[label]; ok {
		return id
	}
	id := len(r.symbolNames)
	r.symbolNames = append(r.symbolNames, label)
	r.symbolIndex[label] = id
	return id
}

// SetStart Designates the start state.
func (r *Builder) SetStart(state int) {
	r.checkOpen()
	r.start = state
}

// SetAccept Set or clear this state as an accept state.
func (r *Builder) SetAccept(state int, accept bool) {
	r.checkOpen()
	r.isAccept.SetTo(uint(state), accept)
}

// AddTransition Add a transition from source to dest on symbol. Adding the same transition twice is a
// no-op; adding a second, different destination for (source, symbol) fails.
func (r *Builder) AddTransition(source, symbol, dest int) error {
	r.checkOpen()
	if source < 0 || source >= len(r.stateNames) || dest < 0 || dest >= len(r.stateNames) {
		return errors.Errorf("transition %d -> %d references an unknown state", source, dest)
	}
	if symbol < 0 || symbol >= len(r.symbolNames) {
		return errors.Errorf("transition from state %d references unknown symbol %d", source, symbol)
	}

	key := [2]int{source, symbol}
	if prev, ok := r.defined[key]; ok {
		if prev == dest {
			return nil
		}
		return errors.Errorf("state %q already has a transition on %q (to %q, not %q)",
			r.stateNames[source], r.symbolNames[symbol], r.stateNames[prev], r.stateNames[dest])
	}
	r.defined[key] = dest
	r.transitions = append(r.transitions, source, symbol, dest)
	return nil
}

// AddTransitionLabel Add a transition on the symbol interned for label.
func (r *Builder) AddTransitionLabel(source int, label string, dest int) error {
	return r.AddTransition(source, r.Symbol(label), dest)
}

// Finish Produces the dense automaton. The builder must not be used afterwards.
func (r *Builder) Finish() *Automaton {
	r.checkOpen()
	r.finished = true

	numStates := len(r.stateNames)
	numSymbols := len(r.symbolNames)
	table := filled(numStates*numSymbols, NoTransition)
	for i := 0; i < len(r.transitions); i += 3 {
		table[r.transitions[i]*numSymbols+r.transitions[i+1]] = r.transitions[i+2]
	}

	accept := bitset.New(uint(numStates))
	accept.InPlaceUnion(r.isAccept)

	a := newAutomaton(r.stateNames, r.symbolNames, table, accept, r.start)

	r.stateIndex = nil
	r.symbolIndex = nil
	r.defined = nil
	r.transitions = nil
	return a
}
