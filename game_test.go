package main

import (
	"strings"
	"testing"

	"github.com/TwiN/go-color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWord(t testing.TB, s string) Word {
	t.Helper()
	w, err := parseWord(s)
	require.NoError(t, err)
	return w
}

func mustWords(t testing.TB, ss []string) []Word {
	t.Helper()
	ws, err := parseWords(ss)
	require.NoError(t, err)
	return ws
}

// testWords is a prefix of the built-in list plus its words with repeated
// letters, which exercise the count bounds.
func testWords(t testing.TB, n int) []string {
	t.Helper()
	all, err := vocabulary(0, false)
	require.NoError(t, err)
	words := append([]string{}, all[:n]...)
	for _, w := range all[n:] {
		if distinct(w) < length {
			words = append(words, w)
		}
	}
	return words
}

func distinct(w string) int {
	set := make(map[byte]bool)
	for i := 0; i < len(w); i++ {
		set[w[i]] = true
	}
	return len(set)
}

func TestParseWord(t *testing.T) {
	w := mustWord(t, "eerie")
	assert.Equal(t, "eerie", w.String())
	assert.Equal(t, uint8(3), w.index['e'-'a'].count())
	assert.Equal(t, uint8(0b10011), w.index['e'-'a'].positions())
	assert.Equal(t, uint32(1<<('e'-'a')|1<<('r'-'a')|1<<('i'-'a')), w.set)

	for _, bad := range []string{"", "abc", "abcdef", "Trace", "tr4ce", "trac\n", "über"} {
		_, err := parseWord(bad)
		assert.ErrorIs(t, err, ErrMalformedWord, "%q", bad)
	}
}

func TestFeedback(t *testing.T) {
	for _, tc := range []struct {
		guess, answer, want string
	}{
		{"trace", "trace", "GGGGG"},
		{"trace", "crate", "YGGYG"},
		{"geese", "eerie", "_GY_G"},
		{"sheep", "geese", "Y_GY_"},
		{"eerie", "sheep", "YY___"},
		{"mamma", "llama", "_Y_GG"},
		{"llama", "mamma", "__YGG"},
		{"puppy", "happy", "__GGG"},
		{"daddy", "added", "YYGY_"},
		{"fuzzy", "trace", "_____"},
	} {
		t.Run(tc.guess+"/"+tc.answer, func(t *testing.T) {
			got := feedback(mustWord(t, tc.guess), mustWord(t, tc.answer))
			assert.Equal(t, tc.want, resultString(got))
		})
	}
}

func TestFeedbackSelfIsAllGreen(t *testing.T) {
	for _, w := range mustWords(t, testWords(t, 100)) {
		assert.True(t, solved(feedback(w, w)), w.text)
	}
}

func TestFeedbackDisjointIsAllGray(t *testing.T) {
	words := mustWords(t, testWords(t, 100))
	checked := 0
	for _, guess := range words {
		for _, answer := range words {
			if guess.set&answer.set != 0 {
				continue
			}
			checked++
			assert.Equal(t, "_____", resultString(feedback(guess, answer)), "%v/%v", guess, answer)
		}
	}
	assert.NotZero(t, checked)
}

// Consistency against the interned pattern must agree with comparing the
// clues directly.
func TestConsistentMatchesFeedback(t *testing.T) {
	words := mustWords(t, testWords(t, 20))
	for _, guess := range words {
		for _, answer := range words {
			want := feedback(guess, answer)
			p := newPattern(guess, answer)
			for _, candidate := range words {
				got := p.allows(candidate)
				if got != (feedback(guess, candidate) == want) {
					t.Fatalf("consistent(%v, %v, %v) = %v", candidate, guess, answer, got)
				}
			}
			assert.True(t, consistent(answer, guess, answer))
		}
	}
}

// containmentFeedback is the simpler rule that marks a letter yellow
// whenever the answer contains it anywhere, ignoring how many copies have
// already been matched.
func containmentFeedback(guess, answer string) (result [length]clue) {
	for i := 0; i < length; i++ {
		switch {
		case guess[i] == answer[i]:
			result[i] = green
		case strings.IndexByte(answer, guess[i]) >= 0:
			result[i] = yellow
		default:
			result[i] = gray
		}
	}
	return result
}

// The two rules disagree on repeated letters. The count-bounded rule is the
// one the game shows; scores computed under the containment rule differ
// for vocabularies with repeated letters.
func TestContainmentRuleDiverges(t *testing.T) {
	for _, tc := range []struct {
		guess, answer, counted, contained string
	}{
		{"eerie", "sheep", "YY___", "YY__Y"},
		{"mamma", "llama", "_Y_GG", "YYYGG"},
		{"puppy", "happy", "__GGG", "Y_GGG"},
	} {
		got := feedback(mustWord(t, tc.guess), mustWord(t, tc.answer))
		assert.Equal(t, tc.counted, resultString(got))
		assert.Equal(t, tc.contained, resultString(containmentFeedback(tc.guess, tc.answer)))
	}

	// Without repeated letters they agree.
	words := testWords(t, 60)[:60]
	for _, g := range words {
		for _, a := range words {
			if distinct(g) == length {
				assert.Equal(t, feedback(mustWord(t, g), mustWord(t, a)), containmentFeedback(g, a))
			}
		}
	}
}

func TestPatternInterning(t *testing.T) {
	// against a fixed guess, answers differing only in unshared letters
	// share a pattern
	guess := mustWord(t, "trace")
	assert.Equal(t, newPattern(guess, mustWord(t, "about")), newPattern(guess, mustWord(t, "adult")))
	assert.NotEqual(t, newPattern(guess, mustWord(t, "about")), newPattern(guess, mustWord(t, "other")))

	p := newPattern(mustWord(t, "eerie"), mustWord(t, "sheep"))
	assert.Equal(t, uint32(1<<('e'-'a')), p.shared)
	assert.Equal(t, uint32(1<<('r'-'a')|1<<('i'-'a')), p.missing)
	assert.Equal(t, uint8(0), p.green[0])
	assert.Equal(t, uint8(0b10011), p.orange[0])
	assert.Equal(t, uint8(2), p.min[0])
	assert.Equal(t, uint8(2), p.max[0])
}

func TestColored(t *testing.T) {
	got := colored("crate", feedback(mustWord(t, "crate"), mustWord(t, "trace")))
	assert.True(t, strings.HasPrefix(got, color.Colorize(color.Yellow, "c")), got)
	assert.Contains(t, got, color.Colorize(color.Green, "r"))
	assert.Contains(t, got, color.Colorize(color.Green, "e"))
}
