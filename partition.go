package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Partition A set of non-empty, pairwise disjoint blocks covering the states 0..n-1 of an automaton.
type Partition struct {
	blockOf []int
	blocks  [][]int
}

// NewPartitionFromBlocks Builds a partition of n states from explicit blocks. Members are copied and
// sorted; the caller keeps ownership of blocks.
func NewPartitionFromBlocks(n int, blocks [][]int) *Partition {
	p := &Partition{
		blockOf: filled(n, -1),
		blocks:  make([][]int, 0, len(blocks)),
	}
	for _, block := range blocks {
		if len(block) == 0 {
			continue
		}
		members := slices.Clone(block)
		slices.Sort(members)
		id := len(p.blocks)
		for _, s := range members {
			if s >= 0 && s < n {
				p.blockOf[s] = id
			}
		}
		p.blocks = append(p.blocks, members)
	}
	return p
}

// NewPartitionFromAssignment Builds a partition from a per-state block id. Block ids may be sparse;
// blocks are numbered by first occurrence.
func NewPartitionFromAssignment(assign []int) *Partition {
	p := &Partition{
		blockOf: make([]int, len(assign)),
	}
	ids := make(map[int]int)
	for s, b := range assign {
		id, ok := ids[b]
		if !ok {
			id = len(p.blocks)
			ids[b] = id
			p.blocks = append(p.blocks, nil)
		}
		p.blockOf[s] = id
		p.blocks[id] = append(p.blocks[id], s)
	}
	return p
}

// GetNumStates Number of states the partition covers.
func (p *Partition) GetNumStates() int {
	return len(p.blockOf)
}

// GetNumBlocks How many blocks this partition has.
func (p *Partition) GetNumBlocks() int {
	return len(p.blocks)
}

// Block Returns the ascending members of block i. Callers must not modify it.
func (p *Partition) Block(i int) []int {
	return p.blocks[i]
}

// BlockOf Returns the block containing state, -1 if no block does.
func (p *Partition) BlockOf(state int) int {
	return p.blockOf[state]
}

// Canonical Returns the per-state block assignment with blocks renumbered in order of their first
// member. Two partitions induce the same equivalence relation iff their canonical forms are equal.
func (p *Partition) Canonical() []int {
	ids := filled(len(p.blocks), -1)
	out := make([]int, len(p.blockOf))
	next := 0
	for s, b := range p.blockOf {
		if b < 0 {
			out[s] = -1
			continue
		}
		if ids[b] < 0 {
			ids[b] = next
			next++
		}
		out[s] = ids[b]
	}
	return out
}

// Equivalent Returns true if both partitions group the same states together.
func (p *Partition) Equivalent(other *Partition) bool {
	return slices.Equal(p.Canonical(), other.Canonical())
}

// Validate Checks that p is a partition of a's states whose blocks agree on acceptance and, for
// every symbol, on the block reached (or on the transition being undefined).
func (p *Partition) Validate(a *Automaton) error {
	n := a.GetNumStates()
	if len(p.blockOf) != n {
		return NewError(CodeInvalidPartition, "partition covers %d states, automaton has %d", len(p.blockOf), n)
	}

	seen := bitset.New(uint(n))
	for b, block := range p.blocks {
		if len(block) == 0 {
			return NewError(CodeInvalidPartition, "block %d is empty", b)
		}
		for _, s := range block {
			if s < 0 || s >= n {
				return NewError(CodeInvalidPartition, "block %d references unknown state %d", b, s)
			}
			if seen.Test(uint(s)) || p.blockOf[s] != b {
				return NewError(CodeInvalidPartition, "state %q appears in more than one block", a.GetStateName(s))
			}
			seen.Set(uint(s))
		}
	}
	if int(seen.Count()) != n {
		for s := 0; s < n; s++ {
			if !seen.Test(uint(s)) {
				return NewError(CodeInvalidPartition, "state %q is not covered", a.GetStateName(s))
			}
		}
	}

	for b, block := range p.blocks {
		rep := block[0]
		for _, s := range block[1:] {
			if a.IsAccept(s) != a.IsAccept(rep) {
				return NewError(CodeInvalidPartition, "block %d mixes accepting %q and non-accepting %q",
					b, a.GetStateName(rep), a.GetStateName(s))
			}
			for c := 0; c < a.numSymbols; c++ {
				if p.targetBlock(a, rep, c) != p.targetBlock(a, s, c) {
					return NewError(CodeInvalidPartition, "states %q and %q of block %d disagree on %q",
						a.GetStateName(rep), a.GetStateName(s), b, a.GetSymbolName(c))
				}
			}
		}
	}
	return nil
}

func (p *Partition) targetBlock(a *Automaton, state, symbol int) int {
	dest := a.Step(state, symbol)
	if dest == NoTransition {
		return NoTransition
	}
	return p.blockOf[dest]
}
