package main

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrEmptyVocabulary = errors.New("empty vocabulary")
	ErrDuplicateWord   = errors.New("duplicate word")
)

// Ordered roughly most common first, so a prefix is a reasonable smaller
// vocabulary.
//
//go:embed words.txt
var allWords string

//go:embed common.txt
var commonWords string

// readWords reads one word per line, skipping blank lines, and stops after
// n words if n > 0.
func readWords(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var words []string
	seen := make(map[string]bool)
	for line := 1; scanner.Scan(); line++ {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		if _, err := parseWord(w); err != nil {
			return nil, fmt.Errorf("line %v: %w", line, err)
		}
		if seen[w] {
			return nil, fmt.Errorf("line %v: %w: %q", line, ErrDuplicateWord, w)
		}
		seen[w] = true
		words = append(words, w)
		if n > 0 && len(words) == n {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return words, nil
}

// vocabulary returns the first n (or all, if n <= 0) built-in words,
// optionally only the common ones.
func vocabulary(n int, common bool) ([]string, error) {
	src := allWords
	if common {
		src = commonWords
	}
	return readWords(strings.NewReader(src), n)
}

func loadVocabulary(filename string, n int, common bool) ([]string, error) {
	if filename == "" {
		return vocabulary(n, common)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWords(f, n)
}

func parseWords(vocab []string) ([]Word, error) {
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}
	words := make([]Word, len(vocab))
	seen := make(map[string]bool, len(vocab))
	for i, s := range vocab {
		w, err := parseWord(s)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, s)
		}
		seen[s] = true
		words[i] = w
	}
	return words, nil
}
