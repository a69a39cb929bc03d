package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// histogram buckets; games never take anywhere near this many guesses
const m = 100

// A simulation records how many guesses the solver's strategy needs for
// each answer.
type simulation struct {
	opener  string
	guesses map[string]int
	hist    [m]int
}

// simulate plays opener and then the solver's best guesses against every
// answer in vocab. With exactPairCost, the average of the counts is the
// opener's expected score.
func simulate(vocab []string, opener string, cfg evalConfig, progress io.Writer) (*simulation, error) {
	words, ids, err := prepare(vocab, []string{opener})
	if err != nil {
		return nil, err
	}
	table := buildTable(cfg.table, words)
	answers := len(vocab)
	counts := make([]int, answers)

	bar := newBar(progress, answers, "simulating "+opener)
	limit := max(min(cfg.workers, answers), 1)
	forEach(limit, limit, func(worker int) {
		s := newSolver(table, answers, cfg.solver)
		for a := worker; a < answers; a += limit {
			counts[a] = s.play(ids[0], int32(a))
			bar.Add(1)
		}
	})

	sim := &simulation{opener: opener, guesses: make(map[string]int, answers)}
	for a, c := range counts {
		sim.guesses[vocab[a]] = c
		sim.hist[min(c, m-1)]++
	}
	return sim, nil
}

// worstAnswers returns the answers needing the most guesses, sorted.
func (s *simulation) worstAnswers() (int, []string) {
	worst := 0
	var words []string
	for w, c := range s.guesses {
		switch {
		case worst < c:
			words = []string{w}
			worst = c
		case worst == c:
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return worst, words
}

func (s *simulation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "opener %v over %v answers\n", s.opener, len(s.guesses))
	for i, c := range s.hist {
		if c > 0 {
			fmt.Fprintf(&b, "%3d: %v\n", i, c)
		}
	}
	for _, metric := range metrics {
		fmt.Fprintln(&b, metric.run(&s.hist))
	}
	worst, words := s.worstAnswers()
	fmt.Fprintf(&b, "needing %v: %v", worst, strings.Join(words, " "))
	return b.String()
}

type metricImpl[T constraints.Ordered] struct {
	name      string
	valueFunc func(*[m]int) T
}

func (m *metricImpl[T]) run(hist *[m]int) string {
	return fmt.Sprintf("%v: %v", m.name, m.valueFunc(hist))
}

type metric interface {
	run(hist *[m]int) string
}

var metrics = []metric{
	&metricImpl[int]{"worst", func(r *[m]int) int {
		for i := m - 1; i >= 0; i-- {
			if r[i] > 0 {
				return i
			}
		}
		panic("empty result")
	}},
	&metricImpl[int]{"best", func(r *[m]int) int {
		for i := 0; i < m; i++ {
			if r[i] > 0 {
				return i
			}
		}
		panic("empty result")
	}},
	&metricImpl[float64]{"average", func(r *[m]int) float64 {
		sum := 0
		ct := 0
		for i := 0; i < m; i++ {
			sum += i * r[i]
			ct += r[i]
		}
		return float64(sum) / float64(ct)
	}},
	&metricImpl[float64]{"not-in-6", func(r *[m]int) float64 {
		cutoff := 6
		win := 0
		loss := 0
		for i := 0; i <= cutoff; i++ {
			win += r[i]
		}
		for i := cutoff + 1; i < m; i++ {
			loss += r[i]
		}
		return 100 * float64(loss) / float64(win+loss)
	}},
}
