package automaton

import (
	"math/rand/v2"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Automata Factory of common automata.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton with no states; it accepts the empty language.
func (*Automata) MakeEmpty() *Automaton {
	return NewEmptyAutomaton()
}

// MakeRandom
// Returns a complete automaton with numStates states S0..S<n-1> over the symbols "0".."<k-1>", start
// state S0, uniformly random transitions and each state accepting with probability ½. The last state
// is made accepting if no other state is.
func (*Automata) MakeRandom(numStates, numSymbols int, rng *rand.Rand) (*Automaton, error) {
	if numStates <= 0 || numSymbols < 0 {
		return nil, NewError(CodeInvalidArgument, "random automaton needs states > 0 and symbols >= 0, got %d and %d",
			numStates, numSymbols)
	}
	if rng == nil {
		return nil, NewError(CodeInvalidArgument, "random automaton needs a random source")
	}

	names := make([]string, numStates)
	for i := range names {
		names[i] = "S" + strconv.Itoa(i)
	}
	symbols := make([]string, numSymbols)
	for i := range symbols {
		symbols[i] = strconv.Itoa(i)
	}

	table := make([]int, numStates*numSymbols)
	for i := range table {
		table[i] = rng.IntN(numStates)
	}

	accept := bitset.New(uint(numStates))
	for s := 0; s < numStates; s++ {
		if rng.IntN(2) == 1 {
			accept.Set(uint(s))
		}
	}
	if accept.None() {
		accept.Set(uint(numStates - 1))
	}

	return newAutomaton(names, symbols, table, accept, 0), nil
}

// RandomAutomaton See Automata.MakeRandom.
func RandomAutomaton(numStates, numSymbols int, rng *rand.Rand) (*Automaton, error) {
	return defaultAutomata.MakeRandom(numStates, numSymbols, rng)
}
