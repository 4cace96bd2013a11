// Package wordlist filters generated segments against word lists: a
// built-in blocklist of segments that must never appear in output, and
// an optional list of common English words that make a name read as a
// word rather than a name.
package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// Set is a lowercase word membership set.
type Set struct {
	words map[string]bool
}

// NewSet builds a set from the given words, lowercasing each.
func NewSet(words []string) *Set {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return &Set{words: set}
}

// Contains reports whether the word is in the set (case-insensitive).
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	return s.words[strings.ToLower(word)]
}

// Len returns the number of words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// LoadFile reads a word list file, one word per line, skipping blanks
// and #-comments. A missing file yields an empty set rather than an
// error so the common-word filter degrades to a no-op.
func LoadFile(path string) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(nil), nil
		}
		return nil, fmt.Errorf("read word list: %w", err)
	}
	var words []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return NewSet(words), nil
}

// Blocklist returns the built-in set of segments that never appear in
// generated names regardless of settings.
func Blocklist() *Set {
	return NewSet([]string{
		"ass", "cum", "die", "fat", "fag", "gay", "god", "hoe", "nig",
		"pee", "pig", "poo", "sex", "shit", "slut", "tit", "tits",
		"damn", "dick", "dumb", "fuck", "hell", "homo", "jerk", "kill",
		"piss", "porn", "rape", "scum", "thot", "twat", "wank",
		"bitch", "whore", "penis", "pussy",
	})
}
