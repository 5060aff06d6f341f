package automaton

import "github.com/bits-and-blooms/bitset"

// StateSet A set of states that remembers insertion order, so it can be iterated and cleared in time
// proportional to its size rather than to the number of states of the automaton.
type StateSet struct {
	members  *bitset.BitSet
	inserted []int
}

func NewStateSet(numStates int) *StateSet {
	return &StateSet{
		members: bitset.New(uint(numStates)),
	}
}

// Add Inserts state, returns false if it was already present.
func (s *StateSet) Add(state int) bool {
	if s.members.Test(uint(state)) {
		return false
	}
	s.members.Set(uint(state))
	s.inserted = append(s.inserted, state)
	return true
}

// GetArray Returns the states in insertion order. The slice is only valid until the next Clear.
func (s *StateSet) GetArray() []int {
	return s.inserted
}

// Clear Removes all states.
func (s *StateSet) Clear() {
	for _, state := range s.inserted {
		s.members.Clear(uint(state))
	}
	s.inserted = s.inserted[:0]
}
