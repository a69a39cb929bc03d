package main

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/TwiN/go-color"
)

const (
	length  = 5
	letters = 26
)

var ErrMalformedWord = errors.New("malformed word")

type clue uint8

const (
	unknown clue = iota
	gray
	yellow
	green
)

func resultString(result [length]clue) string {
	b := make([]byte, length)
	for i, c := range result {
		switch c {
		case unknown:
			b[i] = ' '
		case gray:
			b[i] = '_'
		case yellow:
			b[i] = 'Y'
		case green:
			b[i] = 'G'
		}
	}
	return string(b)
}

// colored renders word with the background of each letter set by its clue.
func colored(word string, result [length]clue) string {
	var b strings.Builder
	for i, c := range result {
		var col string
		switch c {
		case green:
			col = color.Green
		case yellow:
			col = color.Yellow
		default:
			col = color.Gray
		}
		b.WriteString(color.Colorize(col, word[i:i+1]))
	}
	return b.String()
}

// low 5 bits: bitmask of where the letter is
// high 3 bits: int3 of how many there are
type (
	charIndex uint8
	index     [letters]charIndex
)

func newIndex(word string) index {
	var ret index
	for i, c := range []byte(word) {
		ret[c-'a'] |= 1 << i
		ret[c-'a'] += 1 << length
	}
	return ret
}

func (ci charIndex) count() uint8 {
	return uint8(ci >> length)
}

func (ci charIndex) at(i int) bool {
	return ci&(1<<i) != 0
}

func (ci charIndex) positions() uint8 {
	return uint8(ci) & (1<<length - 1)
}

// A Word is a vocabulary entry with its letter index precomputed.
type Word struct {
	text  string
	index index
	// bit i set iff letter 'a'+i occurs
	set uint32
}

func parseWord(s string) (Word, error) {
	if len(s) != length {
		return Word{}, fmt.Errorf("%w: len(%q) = %v", ErrMalformedWord, s, len(s))
	}
	w := Word{text: s}
	for i := 0; i < length; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return Word{}, fmt.Errorf("%w: %q has %q at %v", ErrMalformedWord, s, c, i+1)
		}
		w.set |= 1 << (c - 'a')
	}
	w.index = newIndex(s)
	return w, nil
}

func (w Word) String() string {
	return w.text
}

// feedback returns the clues shown for guess when the answer is answer.
// Repeated letters are resolved by occurrence count: greens first, then
// the leftmost remaining copies are yellow while the answer has unmatched
// copies, and the rest are gray.
func feedback(guess, answer Word) (result [length]clue) {
	for i, charIndex := range guess.index {
		targetIndex := answer.index[i]
		switch {
		case charIndex == 0:
			continue
		case targetIndex == 0:
			for j := 0; j < length; j++ {
				if charIndex.at(j) {
					result[j] = gray
				}
			}
		case charIndex.count() <= targetIndex.count():
			// guessed at most the right number of this letter: they'll all be
			// green/yellow.
			for j := 0; j < length; j++ {
				if charIndex.at(j) {
					if targetIndex.at(j) {
						result[j] = green
					} else {
						result[j] = yellow
					}
				}
			}
		default:
			// guessed too many of this letter: correct positions are
			// green, then the first n are yellow to get the right
			// number, rest are gray.
			need := targetIndex.count()
			for j := 0; j < length; j++ {
				if charIndex.at(j) && targetIndex.at(j) {
					result[j] = green
					need--
				}
			}
			for j := 0; j < length; j++ {
				if charIndex.at(j) && !targetIndex.at(j) {
					if need > 0 {
						result[j] = yellow
						need--
					} else {
						result[j] = gray
					}
				}
			}
		}
	}
	return result
}

func solved(result [length]clue) bool {
	return result == [length]clue{green, green, green, green, green}
}

// A pattern is everything a guess reveals about an answer, in a form that
// does not depend on which answer produced it. The per-letter arrays are
// indexed by rank within shared, lowest letter first.
type pattern struct {
	shared  uint32 // letters in both guess and answer
	missing uint32 // letters of the guess not in the answer
	green   [length]uint8
	// guess positions of the letter that were not green
	orange [length]uint8
	// bounds on how many copies the answer has
	min, max [length]uint8
}

func newPattern(guess, answer Word) pattern {
	p := pattern{shared: guess.set & answer.set}
	p.missing = guess.set ^ p.shared
	shared := p.shared
	for i := 0; shared != 0; i++ {
		letter := bits.TrailingZeros32(shared)
		g, a := guess.index[letter], answer.index[letter]
		p.green[i] = g.positions() & a.positions()
		p.orange[i] = g.positions() ^ p.green[i]
		p.min[i] = min(g.count(), a.count())
		if g.count() > a.count() {
			// the gray copy pins the count exactly
			p.max[i] = a.count()
		} else {
			p.max[i] = length
		}
		shared &= shared - 1
	}
	return p
}

// allows reports whether w could still be the answer after seeing p.
func (p pattern) allows(w Word) bool {
	if w.set&p.shared != p.shared || w.set&p.missing != 0 {
		return false
	}
	shared := p.shared
	for i := 0; shared != 0; i++ {
		ci := w.index[bits.TrailingZeros32(shared)]
		pos := ci.positions()
		if pos&p.green[i] != p.green[i] || pos&p.orange[i] != 0 {
			return false
		}
		if n := ci.count(); n < p.min[i] || n > p.max[i] {
			return false
		}
		shared &= shared - 1
	}
	return true
}

// consistent reports whether candidate would show the same clues for guess
// as answer does.
func consistent(candidate, guess, answer Word) bool {
	return newPattern(guess, answer).allows(candidate)
}
