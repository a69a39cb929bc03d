package main

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// strategy selects which words the solver considers guessing once some
// feedback is known.
type strategy int

const (
	// only words that could still be the answer
	candidatesOnly strategy = iota
	// every word in the table, which sometimes gains information at the
	// cost of never winning on that turn
	anyWord
)

const (
	// charged for a two-candidate residual on top of the guess that left it
	defaultPairCost = 2.5
	// what optimal play actually averages for a pair: 1 or 2 more guesses
	exactPairCost = 1.5
)

type solverOptions struct {
	strategy strategy
	// 0 means defaultPairCost
	pairCost float64
	// recompute every subset instead of memoizing; results are identical
	noCache bool
	// seeds the per-word fingerprint tags
	seed int64
}

// A Ranked is a guess and the expected number of guesses to win after
// playing it first.
type Ranked struct {
	Score float64
	Word  string
}

func (r Ranked) String() string {
	return fmt.Sprintf("%v %v", r.Word, r.Score)
}

func sortRanked(rs []Ranked) {
	slices.SortStableFunc(rs, func(a, b Ranked) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
}

// solver computes expected guess counts over the words of one table. The
// first answers words of the table are the possible answers; any later
// words are only ever guessed. A solver is not safe for concurrent use,
// but any number of solvers may share a table.
type solver struct {
	table   validity
	answers int
	opts    solverOptions

	// fingerprint of a set is the (wrapping) sum of its members' tags.
	// Distinct sets can collide, with probability ~ 2^-64 per pair.
	tags  []uint64
	cache map[uint64]float64

	all     []int32
	scratch sync.Pool
}

func newSolver(table validity, answers int, opts solverOptions) *solver {
	n := table.size()
	if answers <= 0 || answers > n {
		panic(fmt.Sprintf("invalid answer count: %v of %v words", answers, n))
	}
	s := &solver{
		table:   table,
		answers: answers,
		opts:    opts,
		tags:    make([]uint64, n),
		cache:   make(map[uint64]float64),
		all:     make([]int32, n),
	}
	rng := rand.New(rand.NewSource(opts.seed))
	for i := range s.tags {
		s.tags[i] = rng.Uint64()
		s.all[i] = int32(i)
	}
	if s.opts.pairCost == 0 {
		s.opts.pairCost = defaultPairCost
	}
	s.scratch.New = func() any {
		buf := make([]int32, 0, answers)
		return &buf
	}
	return s
}

// answerSet returns a fresh candidate set holding every answer, ascending.
func (s *solver) answerSet() []int32 {
	return slices.Clone(s.all[:s.answers])
}

func (s *solver) fingerprint(cands []int32) uint64 {
	var sum uint64
	for _, w := range cands {
		sum += s.tags[w]
	}
	return sum
}

func (s *solver) guesses(cands []int32) []int32 {
	if s.opts.strategy == anyWord {
		return s.all
	}
	return cands
}

// evaluateGuess returns the expected number of guesses, including this one,
// to find an answer drawn uniformly from cands if guess is played now and
// play is optimal afterwards.
func (s *solver) evaluateGuess(guess int32, cands []int32) float64 {
	if len(cands) == 0 {
		panic("evaluateGuess: empty candidate set")
	}
	buf := s.scratch.Get().(*[]int32)
	defer s.scratch.Put(buf)

	total := 0.0
	for _, answer := range cands {
		total += 1.0
		if answer == guess {
			continue
		}
		next := s.table.filter(guess, answer, cands, (*buf)[:0])
		*buf = next
		switch len(next) {
		case 0:
			panic(fmt.Sprintf("answer %v inconsistent with itself", answer))
		case 1:
			total += 1.0
		case 2:
			total += s.opts.pairCost
		default:
			if len(next) == len(cands) {
				// Every answer gives the same clues, so guess is not a
				// candidate. Searching such guesses would recurse on the
				// same set forever.
				if s.opts.strategy == anyWord {
					return math.Inf(1)
				}
				return 1 + s.best(cands)
			}
			total += s.best(next)
		}
	}
	return total / float64(len(cands))
}

// best returns the expected number of guesses to find the answer among
// cands with optimal play.
func (s *solver) best(cands []int32) float64 {
	if s.opts.noCache {
		_, score := s.bestGuess(cands)
		return score
	}
	key := s.fingerprint(cands)
	if score, ok := s.cache[key]; ok {
		return score
	}
	_, score := s.bestGuess(cands)
	s.cache[key] = score
	return score
}

// bestGuess returns the guess minimizing the expected number of guesses
// over cands, preferring the earliest on ties.
func (s *solver) bestGuess(cands []int32) (int32, float64) {
	if len(cands) == 0 {
		panic("bestGuess: empty candidate set")
	}
	best, bestScore := int32(-1), math.MaxFloat64
	for _, guess := range s.guesses(cands) {
		if score := s.evaluateGuess(guess, cands); score < bestScore {
			best, bestScore = guess, score
		}
	}
	return best, bestScore
}

// rate is evaluateGuess for a guess played first, where a guess that
// learns nothing still costs one turn rather than being ruled out.
func (s *solver) rate(guess int32, cands []int32) float64 {
	score := s.evaluateGuess(guess, cands)
	if math.IsInf(score, 1) {
		return 1 + s.best(cands)
	}
	return score
}

// play follows the solver's strategy from opener until answer is guessed,
// and returns the number of guesses taken.
func (s *solver) play(opener, answer int32) int {
	cands := s.answerSet()
	guess := opener
	for turn := 1; ; turn++ {
		if guess == answer {
			return turn
		}
		cands = s.table.filter(guess, answer, cands, nil)
		switch len(cands) {
		case 0:
			panic(fmt.Sprintf("answer %v inconsistent with itself", answer))
		case 1, 2:
			guess = cands[0]
		default:
			guess, _ = s.bestGuess(cands)
		}
	}
}

// rankGuesses scores each guess over all answers of table and returns the
// results best first. Guesses are spread over up to limit solvers, each
// with its own cache.
func rankGuesses(table validity, answers int, words []Word, guesses []int32, opts solverOptions, limit int) []Ranked {
	out := make([]Ranked, len(guesses))
	limit = max(min(limit, len(guesses)), 1)
	forEach(limit, limit, func(worker int) {
		s := newSolver(table, answers, opts)
		cands := s.answerSet()
		for i := worker; i < len(guesses); i += limit {
			out[i] = Ranked{
				Score: s.rate(guesses[i], cands),
				Word:  words[guesses[i]].text,
			}
		}
	})
	sortRanked(out)
	return out
}

type evalConfig struct {
	table   tableKind
	solver  solverOptions
	workers int
}

func defaultEvalConfig() evalConfig {
	return evalConfig{table: patternKind, workers: workers()}
}

// prepare parses vocab followed by any guesses not already in it, and
// returns the words and the index of each guess.
func prepare(vocab, guesses []string) ([]Word, []int32, error) {
	words, err := parseWords(vocab)
	if err != nil {
		return nil, nil, err
	}
	pos := make(map[string]int32, len(words))
	for i, w := range vocab {
		pos[w] = int32(i)
	}
	ids := make([]int32, len(guesses))
	for i, g := range guesses {
		id, ok := pos[g]
		if !ok {
			w, err := parseWord(g)
			if err != nil {
				return nil, nil, fmt.Errorf("guess: %w", err)
			}
			id = int32(len(words))
			pos[g] = id
			words = append(words, w)
		}
		ids[i] = id
	}
	return words, ids, nil
}

// evaluate ranks guesses by expected number of guesses to find an answer
// drawn uniformly from vocab. Guesses need not be in vocab.
func evaluate(vocab, guesses []string, cfg evalConfig) ([]Ranked, error) {
	words, ids, err := prepare(vocab, guesses)
	if err != nil {
		return nil, err
	}
	table := buildTable(cfg.table, words)
	return rankGuesses(table, len(vocab), words, ids, cfg.solver, cfg.workers), nil
}
