package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Hopcroft Partition refinement driven by a worklist of splitter blocks.
//
// The partition starts as {accepting, non-accepting} and every initial block is a pending splitter.
// For a splitter A and a symbol c, the preimage X of A under c splits every block Y that has members
// both inside and outside X. If Y was still pending both halves stay pending, otherwise only the
// smaller half is queued, which bounds the work to O(|Σ|·n·log n).
type Hopcroft struct{}

// inverseIndex Lists, for every (target, symbol), the states entering target on symbol. Sources of
// (t, c) are sources[start[t*k+c]:start[t*k+c+1]].
type inverseIndex struct {
	k       int
	start   []int
	sources []int
}

func newInverseIndex(a *Automaton) *inverseIndex {
	n, k := a.GetNumStates(), a.numSymbols
	start := make([]int, n*k+1)
	for s := 0; s < n; s++ {
		for c, dest := range a.row(s) {
			if dest != NoTransition {
				start[dest*k+c+1]++
			}
		}
	}
	for i := 1; i < len(start); i++ {
		start[i] += start[i-1]
	}

	sources := make([]int, start[n*k])
	upto := slices.Clone(start[:n*k])
	for s := 0; s < n; s++ {
		for c, dest := range a.row(s) {
			if dest != NoTransition {
				sources[upto[dest*k+c]] = s
				upto[dest*k+c]++
			}
		}
	}
	return &inverseIndex{k: k, start: start, sources: sources}
}

func (idx *inverseIndex) preimage(target, symbol int) []int {
	i := target*idx.k + symbol
	return idx.sources[idx.start[i]:idx.start[i+1]]
}

// refinablePartition Keeps every block as a contiguous segment of elems so that a block can be split
// in time proportional to the size of the marked part.
type refinablePartition struct {
	elems   []int
	loc     []int
	blockOf []int

	// Segment of each block is elems[first[b]:end[b]]; marked members are elems[first[b]:mid[b]].
	first []int
	mid   []int
	end   []int
}

func newRefinablePartition(a *Automaton) *refinablePartition {
	n := a.GetNumStates()
	p := &refinablePartition{
		elems:   make([]int, 0, n),
		loc:     make([]int, n),
		blockOf: make([]int, n),
	}

	for _, accepting := range []bool{true, false} {
		from := len(p.elems)
		for s := 0; s < n; s++ {
			if a.IsAccept(s) == accepting {
				p.loc[s] = len(p.elems)
				p.blockOf[s] = len(p.first)
				p.elems = append(p.elems, s)
			}
		}
		if len(p.elems) > from {
			p.first = append(p.first, from)
			p.mid = append(p.mid, from)
			p.end = append(p.end, len(p.elems))
		}
	}
	return p
}

func (p *refinablePartition) numBlocks() int {
	return len(p.first)
}

func (p *refinablePartition) size(b int) int {
	return p.end[b] - p.first[b]
}

func (p *refinablePartition) members(b int) []int {
	return p.elems[p.first[b]:p.end[b]]
}

// mark Moves s into the marked prefix of its block. Returns true if s is the first marked member.
func (p *refinablePartition) mark(s int) bool {
	b := p.blockOf[s]
	i, j := p.loc[s], p.mid[b]
	if i < j {
		return false
	}
	other := p.elems[j]
	p.elems[i], p.elems[j] = other, s
	p.loc[other], p.loc[s] = i, j
	p.mid[b]++
	return j == p.first[b]
}

// split Detaches the marked prefix of b as a new block and returns its id, or -1 if every member (and
// so no proper subset) was marked. Marks are cleared either way.
func (p *refinablePartition) split(b int) int {
	first, mid := p.first[b], p.mid[b]
	if mid == p.end[b] {
		p.mid[b] = first
		return -1
	}

	nb := len(p.first)
	p.first = append(p.first, first)
	p.mid = append(p.mid, first)
	p.end = append(p.end, mid)
	for _, s := range p.elems[first:mid] {
		p.blockOf[s] = nb
	}
	p.first[b] = mid
	p.mid[b] = mid
	return nb
}

func (Hopcroft) Refine(a *Automaton) *Partition {
	n := a.GetNumStates()
	if n == 0 {
		return NewPartitionFromBlocks(0, nil)
	}

	inverse := newInverseIndex(a)
	p := newRefinablePartition(a)

	workList := arraystack.New()
	pending := bitset.New(uint(n))
	push := func(b int) {
		if !pending.Test(uint(b)) {
			pending.Set(uint(b))
			workList.Push(b)
		}
	}
	for b := 0; b < p.numBlocks(); b++ {
		push(b)
	}

	touched := NewStateSet(n)
	for !workList.Empty() {
		v, _ := workList.Pop()
		splitter := v.(int)
		pending.Clear(uint(splitter))

		// The splitter may itself be split while its symbols are processed; refine against the
		// states it held when it was taken off the worklist.
		targets := slices.Clone(p.members(splitter))

		for c := 0; c < a.numSymbols; c++ {
			touched.Clear()
			for _, t := range targets {
				for _, s := range inverse.preimage(t, c) {
					if p.mark(s) {
						touched.Add(p.blockOf[s])
					}
				}
			}

			for _, y := range touched.GetArray() {
				unmarked := p.end[y] - p.mid[y]
				marked := p.mid[y] - p.first[y]
				nb := p.split(y)
				if nb < 0 {
					continue
				}
				// nb holds Y∩X, y keeps Y\X.
				if pending.Test(uint(y)) || marked <= unmarked {
					push(nb)
				} else {
					push(y)
				}
			}
		}
	}

	blocks := make([][]int, p.numBlocks())
	for b := range blocks {
		blocks[b] = p.members(b)
	}
	return NewPartitionFromBlocks(n, blocks)
}
