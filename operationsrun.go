package automaton

// Run Returns true if the automaton accepts the word given as symbol labels. A label outside the
// alphabet or an undefined transition rejects the word.
func Run(a *Automaton, word []string) bool {
	ids := make([]int, len(word))
	for i, label := range word {
		id, ok := a.GetSymbolID(label)
		if !ok {
			return false
		}
		ids[i] = id
	}
	return RunIDs(a, ids)
}

// RunIDs Returns true if the automaton accepts the word given as symbol ids.
func RunIDs(a *Automaton, word []int) bool {
	if !a.HasStart() {
		return false
	}
	state := a.start
	for _, symbol := range word {
		state = a.Step(state, symbol)
		if state == NoTransition {
			return false
		}
	}
	return a.IsAccept(state)
}
