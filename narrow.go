package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slices"
)

// narrowConfig controls the funnel used when the vocabulary is too large to
// rank every word exactly. Each round splits the shuffled vocabulary into
// chunks of len/divisor words, scores the surviving guesses on each chunk
// alone, and keeps the best few per chunk.
type narrowConfig struct {
	// Divisors gives one round per entry, largest first so that chunks grow.
	Divisors []int
	// Rounds whose chunks would be smaller than this are skipped.
	MinChunk int
	// Guesses kept per chunk.
	Keep    int
	Seed    int64
	Workers int
	// Progress bars are written here; nil discards them.
	Progress io.Writer
	Solver   solverOptions
}

func defaultNarrowConfig() narrowConfig {
	return narrowConfig{
		Divisors: []int{16, 8, 4, 2},
		MinChunk: 20,
		Keep:     30,
		Seed:     1,
		Workers:  workers(),
	}
}

// chunkSizes returns the strictly increasing chunk sizes used for a
// vocabulary of n words.
func (c narrowConfig) chunkSizes(n int) []int {
	var sizes []int
	for _, d := range c.Divisors {
		if d <= 0 {
			continue
		}
		size := n / d
		if size < max(c.MinChunk, 1) || (len(sizes) > 0 && size <= sizes[len(sizes)-1]) {
			continue
		}
		sizes = append(sizes, size)
	}
	return sizes
}

// partition splits perm into ceil(len/size) chunks whose lengths differ by
// at most one.
func partition(perm []int, size int) [][]int {
	n := len(perm)
	chunks := (n + size - 1) / size
	out := make([][]int, chunks)
	for i := range out {
		out[i] = perm[i*n/chunks : (i+1)*n/chunks]
	}
	return out
}

func newBar(w io.Writer, total int, desc string) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// narrow ranks the words of vocab that survive the funnel, best first. The
// scores are exact over the whole vocabulary; only the choice of which
// words to score is heuristic. The result depends only on vocab and cfg.
func narrow(vocab []string, cfg narrowConfig) ([]Ranked, error) {
	if cfg.Keep < 1 {
		return nil, fmt.Errorf("keep must be positive, got %v", cfg.Keep)
	}
	words, err := parseWords(vocab)
	if err != nil {
		return nil, err
	}
	n := len(words)
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)

	shortlist := make([]bool, n)
	for i := range shortlist {
		shortlist[i] = true
	}
	for round, size := range cfg.chunkSizes(n) {
		chunks := partition(perm, size)
		bar := newBar(cfg.Progress, len(chunks), fmt.Sprintf("round %v: %v chunks of %v", round+1, len(chunks), size))
		kept := make([][]int, len(chunks))
		forEach(cfg.Workers, len(chunks), func(i int) {
			kept[i] = narrowChunk(words, chunks[i], shortlist, cfg)
			bar.Add(1)
		})

		next := make([]bool, n)
		for _, ks := range kept {
			for _, w := range ks {
				next[w] = true
			}
		}
		shortlist = next
	}

	var guesses []int32
	for i, ok := range shortlist {
		if ok {
			guesses = append(guesses, int32(i))
		}
	}
	table := newPatternTable(words)
	return rankGuesses(table, n, words, guesses, cfg.Solver, cfg.Workers), nil
}

// narrowChunk scores the shortlisted members of chunk as if chunk were the
// whole vocabulary, and returns the vocabulary indices of the best Keep.
func narrowChunk(words []Word, chunk []int, shortlist []bool, cfg narrowConfig) []int {
	sub := make([]Word, len(chunk))
	var guesses []int32
	for i, w := range chunk {
		sub[i] = words[w]
		if shortlist[w] {
			guesses = append(guesses, int32(i))
		}
	}
	if len(guesses) == 0 {
		return nil
	}

	type scored struct {
		score float64
		guess int32
	}
	s := newSolver(newPatternTable(sub), len(sub), cfg.Solver)
	cands := s.answerSet()
	results := make([]scored, len(guesses))
	for i, g := range guesses {
		results[i] = scored{s.rate(g, cands), g}
	}
	slices.SortStableFunc(results, func(a, b scored) int {
		switch {
		case a.score < b.score:
			return -1
		case a.score > b.score:
			return 1
		}
		return chunk[a.guess] - chunk[b.guess]
	})

	kept := make([]int, 0, cfg.Keep)
	for _, r := range results[:min(cfg.Keep, len(results))] {
		kept = append(kept, chunk[r.guess])
	}
	return kept
}
