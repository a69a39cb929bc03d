package main

import (
	"fmt"
	"math/bits"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"
)

// validity answers "is candidate still possible if guess were played and the
// answer were answer" for a fixed list of words, by index.
type validity interface {
	size() int
	valid(guess, answer, candidate int32) bool
	// filter appends to dst the members of cands that remain possible, in
	// order.
	filter(guess, answer int32, cands, dst []int32) []int32
}

type tableKind int

const (
	patternKind tableKind = iota
	cubeKind
)

func (k tableKind) String() string {
	switch k {
	case patternKind:
		return "pattern"
	case cubeKind:
		return "cube"
	default:
		return fmt.Sprintf("tableKind(%d)", int(k))
	}
}

func parseTableKind(s string) (tableKind, error) {
	switch s {
	case "pattern":
		return patternKind, nil
	case "cube":
		return cubeKind, nil
	}
	return 0, fmt.Errorf("unknown table %q", s)
}

func buildTable(kind tableKind, words []Word) validity {
	if kind == cubeKind {
		return newCube(words)
	}
	return newPatternTable(words)
}

func workers() int {
	return runtime.GOMAXPROCS(0)
}

// forEach runs fn(i) for every i in [0, n) on at most limit goroutines.
// Callers write results to disjoint slots, so no locking is needed.
func forEach(limit, n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	g.Wait()
}

// cube stores every (guess, answer, candidate) bit directly. It's n^3 bits,
// so only usable for a few hundred words.
type cube struct {
	n int
	// rows[guess] has bit answer*n+candidate
	rows []*bitset.BitSet
}

func newCube(words []Word) *cube {
	n := len(words)
	c := &cube{n: n, rows: make([]*bitset.BitSet, n)}

	forEach(workers(), n, func(guess int) {
		row := bitset.New(uint(n * n))
		for answer := range words {
			p := newPattern(words[guess], words[answer])
			for candidate := range words {
				if p.allows(words[candidate]) {
					row.Set(uint(answer*n + candidate))
				}
			}
		}
		c.rows[guess] = row
	})
	return c
}

func (c *cube) size() int { return c.n }

func (c *cube) valid(guess, answer, candidate int32) bool {
	return c.rows[guess].Test(uint(int(answer)*c.n + int(candidate)))
}

func (c *cube) filter(guess, answer int32, cands, dst []int32) []int32 {
	row := c.rows[guess]
	base := uint(int(answer) * c.n)
	for _, w := range cands {
		if row.Test(base + uint(w)) {
			dst = append(dst, w)
		}
	}
	return dst
}

// patternTable maps each (answer, guess) pair to an interned pattern, and
// each pattern to the set of words it allows. Far fewer patterns than pairs
// occur in practice.
type patternTable struct {
	n int
	// ids[answer*n+guess]
	ids   []uint32
	pats  []pattern
	allow []*bitset.BitSet
}

func newPatternTable(words []Word) *patternTable {
	n := len(words)
	t := &patternTable{n: n, ids: make([]uint32, n*n)}

	// Intern per answer row first, so rows can run in parallel; then merge
	// the row tables into global ids.
	local := make([][]pattern, n)
	forEach(workers(), n, func(answer int) {
		seen := make(map[pattern]uint32)
		row := t.ids[answer*n : (answer+1)*n]
		for guess := range words {
			p := newPattern(words[guess], words[answer])
			id, ok := seen[p]
			if !ok {
				id = uint32(len(local[answer]))
				seen[p] = id
				local[answer] = append(local[answer], p)
			}
			row[guess] = id
		}
	})

	global := make(map[pattern]uint32)
	remap := make([][]uint32, n)
	for answer, pats := range local {
		remap[answer] = make([]uint32, len(pats))
		for i, p := range pats {
			id, ok := global[p]
			if !ok {
				id = uint32(len(t.pats))
				global[p] = id
				t.pats = append(t.pats, p)
			}
			remap[answer][i] = id
		}
	}
	forEach(workers(), n, func(answer int) {
		row := t.ids[answer*n : (answer+1)*n]
		for i, id := range row {
			row[i] = remap[answer][id]
		}
	})

	t.fillAllowed(words)
	return t
}

// fillAllowed evaluates each pattern against only the words that contain
// all of its shared letters and none of its missing ones.
func (t *patternTable) fillAllowed(words []Word) {
	lists := letterLists(words)
	type group struct {
		shared  uint32
		missing map[uint32][]uint32
	}
	var groups []group
	byShared := make(map[uint32]int)
	for id, p := range t.pats {
		i, ok := byShared[p.shared]
		if !ok {
			i = len(groups)
			byShared[p.shared] = i
			groups = append(groups, group{p.shared, make(map[uint32][]uint32)})
		}
		groups[i].missing[p.missing] = append(groups[i].missing[p.missing], uint32(id))
	}

	t.allow = make([]*bitset.BitSet, len(t.pats))
	forEach(workers(), len(groups), func(i int) {
		base := withLetters(t.n, &lists, groups[i].shared)
		var rest []int32
		for missing, ids := range groups[i].missing {
			rest = rest[:0]
			for _, w := range base {
				if words[w].set&missing == 0 {
					rest = append(rest, w)
				}
			}
			for _, id := range ids {
				p := t.pats[id]
				allow := bitset.New(uint(t.n))
				for _, w := range rest {
					if p.allows(words[w]) {
						allow.Set(uint(w))
					}
				}
				t.allow[id] = allow
			}
		}
	})
}

// letterLists returns, per letter, the set of words containing it.
func letterLists(words []Word) [letters]*bitset.BitSet {
	var lists [letters]*bitset.BitSet
	for i := range lists {
		lists[i] = bitset.New(uint(len(words)))
	}
	for i, w := range words {
		for set := w.set; set != 0; set &= set - 1 {
			lists[bits.TrailingZeros32(set)].Set(uint(i))
		}
	}
	return lists
}

// withLetters returns the indices of words containing every letter in set.
func withLetters(n int, lists *[letters]*bitset.BitSet, set uint32) []int32 {
	if set == 0 {
		all := make([]int32, n)
		for i := range all {
			all[i] = int32(i)
		}
		return all
	}
	var acc *bitset.BitSet
	for ; set != 0; set &= set - 1 {
		l := lists[bits.TrailingZeros32(set)]
		if acc == nil {
			acc = l.Clone()
		} else {
			acc.InPlaceIntersection(l)
		}
	}
	out := make([]int32, 0, acc.Count())
	for i, ok := acc.NextSet(0); ok; i, ok = acc.NextSet(i + 1) {
		out = append(out, int32(i))
	}
	return out
}

func (t *patternTable) size() int { return t.n }

func (t *patternTable) patterns() int { return len(t.pats) }

func (t *patternTable) id(guess, answer int32) uint32 {
	return t.ids[int(answer)*t.n+int(guess)]
}

func (t *patternTable) valid(guess, answer, candidate int32) bool {
	return t.allow[t.id(guess, answer)].Test(uint(candidate))
}

func (t *patternTable) filter(guess, answer int32, cands, dst []int32) []int32 {
	allow := t.allow[t.id(guess, answer)]
	for _, w := range cands {
		if allow.Test(uint(w)) {
			dst = append(dst, w)
		}
	}
	return dst
}
