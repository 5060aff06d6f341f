package automaton

import (
	"strings"
)

// Refiner Computes the coarsest partition of a pruned automaton's states into indistinguishable
// blocks. Two states are indistinguishable if no word leads exactly one of them to an accept state and
// no word is defined from exactly one of them.
type Refiner interface {
	Refine(a *Automaton) *Partition
}

// Algorithm Names one of the partition-producing strategies.
type Algorithm int

const (
	AlgorithmHopcroft = Algorithm(iota)
	AlgorithmMoore
	AlgorithmTableFilling
)

// Algorithms Lists every strategy, in the order they are usually compared.
var Algorithms = []Algorithm{AlgorithmHopcroft, AlgorithmMoore, AlgorithmTableFilling}

func (alg Algorithm) String() string {
	switch alg {
	case AlgorithmHopcroft:
		return "hopcroft"
	case AlgorithmMoore:
		return "moore"
	case AlgorithmTableFilling:
		return "table-filling"
	}
	return "unknown"
}

// Refiner Returns the strategy implementing alg.
func (alg Algorithm) Refiner() Refiner {
	switch alg {
	case AlgorithmMoore:
		return Moore{}
	case AlgorithmTableFilling:
		return TableFilling{}
	}
	return Hopcroft{}
}

// ParseAlgorithm Resolves an algorithm name; "table_filling" and "tablefilling" are accepted too.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(name)))
	switch normalized {
	case "hopcroft":
		return AlgorithmHopcroft, nil
	case "moore":
		return AlgorithmMoore, nil
	case "table-filling", "tablefilling":
		return AlgorithmTableFilling, nil
	}
	return 0, NewError(CodeInvalidArgument, "unknown algorithm %q", name)
}

// Minimize
// Returns the minimal automaton equivalent to a: unreachable states are pruned, the refiner computes
// the partition of the remaining states and one state is built per block. An automaton without a start
// state minimizes to the empty automaton.
func Minimize(a *Automaton, refiner Refiner) (*Automaton, error) {
	pruned := Prune(a)
	if pruned.GetNumStates() == 0 {
		return NewEmptyAutomaton(a.symbolNames...), nil
	}
	return Reconstruct(pruned, refiner.Refine(pruned))
}

// MinimizeWith Minimize using a named algorithm.
func MinimizeWith(a *Automaton, alg Algorithm) (*Automaton, error) {
	return Minimize(a, alg.Refiner())
}
