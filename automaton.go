package automaton

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	// NoTransition Marks an undefined (state, symbol) entry in the transition table.
	NoTransition = -1

	// NoState Start state of an automaton that declares none.
	NoState = -1
)

// Automaton Represents a deterministic finite automaton over interned states and symbols. States and
// symbols are dense integers 0..n-1 mapped to the external labels they were created from. Transitions
// are kept in a dense table indexed by state*numSymbols+symbol, holding the destination state or
// NoTransition when the transition is undefined. The transition function may be partial.
//
// An Automaton is never modified after it has been built; every operation in this package returns a
// new instance.
type Automaton struct {
	numSymbols int

	// Start state, or NoState.
	start int

	// Destination per (state, symbol), NoTransition if undefined.
	transitions []int

	isAccept *bitset.BitSet

	stateNames  []string
	symbolNames []string
	symbolIndex map[string]int
}

func newAutomaton(stateNames, symbolNames []string, transitions []int, isAccept *bitset.BitSet, start int) *Automaton {
	index := make(map[string]int, len(symbolNames))
	for i, name := range symbolNames {
		index[name] = i
	}
	if isAccept == nil {
		isAccept = bitset.New(uint(len(stateNames)))
	}
	return &Automaton{
		numSymbols:  len(symbolNames),
		start:       start,
		transitions: transitions,
		isAccept:    isAccept,
		stateNames:  stateNames,
		symbolNames: symbolNames,
		symbolIndex: index,
	}
}

// NewEmptyAutomaton Returns an automaton with no states that keeps the given alphabet.
func NewEmptyAutomaton(symbolNames ...string) *Automaton {
	return newAutomaton(nil, append([]string(nil), symbolNames...), nil, nil, NoState)
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.stateNames)
}

// GetNumSymbols Size of the alphabet.
func (a *Automaton) GetNumSymbols() int {
	return a.numSymbols
}

// GetNumTransitions How many defined transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	count := 0
	for _, dest := range a.transitions {
		if dest != NoTransition {
			count++
		}
	}
	return count
}

// GetStart Returns the start state, or NoState.
func (a *Automaton) GetStart() int {
	return a.start
}

// HasStart Returns true if a start state is defined.
func (a *Automaton) HasStart() bool {
	return a.start != NoState
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// GetNumAccept How many accept states this automaton has.
func (a *Automaton) GetNumAccept() int {
	return int(a.isAccept.Count())
}

// Returns a copy of the accept states. If the bit is set then that state is an accept state.
func (a *Automaton) getAcceptStates() *bitset.BitSet {
	return a.isAccept.Clone()
}

// Step Performs lookup in transitions.
// Returns: destination state, NoTransition if the transition is undefined.
func (a *Automaton) Step(state, symbol int) int {
	return a.transitions[state*a.numSymbols+symbol]
}

// row returns the transition row of state. Callers must not modify it.
func (a *Automaton) row(state int) []int {
	return a.transitions[state*a.numSymbols : (state+1)*a.numSymbols]
}

// GetStateName Returns the external label of state.
func (a *Automaton) GetStateName(state int) string {
	return a.stateNames[state]
}

// GetSymbolName Returns the external label of symbol.
func (a *Automaton) GetSymbolName(symbol int) string {
	return a.symbolNames[symbol]
}

// GetSymbolID Returns the symbol interned for label.
func (a *Automaton) GetSymbolID(label string) (int, bool) {
	id, ok := a.symbolIndex[label]
	return id, ok
}

// GetSymbols Returns the alphabet labels in symbol id order.
func (a *Automaton) GetSymbols() []string {
	return append([]string(nil), a.symbolNames...)
}

func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "automaton(states=%d symbols=%d", a.GetNumStates(), a.numSymbols)
	if a.HasStart() {
		fmt.Fprintf(&b, " start=%s", a.stateNames[a.start])
	}
	b.WriteString(")")
	for s := 0; s < a.GetNumStates(); s++ {
		b.WriteString("\n  ")
		b.WriteString(a.stateNames[s])
		if a.IsAccept(s) {
			b.WriteString(" (accept)")
		}
		for c, dest := range a.row(s) {
			if dest != NoTransition {
				fmt.Fprintf(&b, " %s->%s", a.symbolNames[c], a.stateNames[dest])
			}
		}
	}
	return b.String()
}
