package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateAveragesToScore(t *testing.T) {
	vocab := builtin(t, 60)
	cfg := defaultEvalConfig()
	cfg.solver.pairCost = exactPairCost

	sim, err := simulate(vocab, "trace", cfg, nil)
	require.NoError(t, err)
	require.Len(t, sim.guesses, len(vocab))

	total, games := 0, 0
	for i, c := range sim.hist {
		games += c
		total += i * c
	}
	assert.Equal(t, len(vocab), games)
	assert.Equal(t, 1, sim.guesses["trace"])
	assert.Equal(t, 1, sim.hist[1])

	want := score(t, vocab, "trace", cfg)
	assert.InDelta(t, 2.4166666666666665, want, 1e-12)
	assert.InDelta(t, want, float64(total)/float64(games), 1e-9)
}

func TestSimulateOutsideOpener(t *testing.T) {
	vocab := []string{"being", "lower", "stone"}
	sim, err := simulate(vocab, "jazzy", defaultEvalConfig(), nil)
	require.NoError(t, err)
	assert.Zero(t, sim.hist[1])
	for _, w := range vocab {
		assert.GreaterOrEqual(t, sim.guesses[w], 2, w)
	}

	_, err = simulate(vocab, "jazz", defaultEvalConfig(), nil)
	assert.ErrorIs(t, err, ErrMalformedWord)
}

func TestSimulationString(t *testing.T) {
	sim := &simulation{
		opener:  "trace",
		guesses: map[string]int{"trace": 1, "crate": 2, "react": 3, "cater": 3},
	}
	for _, c := range sim.guesses {
		sim.hist[c]++
	}
	worst, words := sim.worstAnswers()
	assert.Equal(t, 3, worst)
	assert.Equal(t, []string{"cater", "react"}, words)

	lines := strings.Split(sim.String(), "\n")
	assert.Equal(t, []string{
		"opener trace over 4 answers",
		"  1: 1",
		"  2: 1",
		"  3: 2",
		"worst: 3",
		"best: 1",
		"average: 2.25",
		"not-in-6: 0",
		"needing 3: cater react",
	}, lines)
}

func TestNotInSix(t *testing.T) {
	var hist [m]int
	hist[4] = 3
	hist[7] = 1
	for _, metric := range metrics {
		if s := metric.run(&hist); strings.HasPrefix(s, "not-in-6") {
			assert.Equal(t, "not-in-6: 25", s)
			return
		}
	}
	t.Fatal("no not-in-6 metric")
}
