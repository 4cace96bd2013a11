// Package letterbag provides an exact-count multiset of lowercase letters.
//
// A Bag is a value type: assignment copies the underlying count array, so
// callers can hand a copy into mutating code without aliasing surprises.
// Every anagram guarantee in the generator rests on Bag bookkeeping.
package letterbag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
)

const alphabetSize = 26

// Bag is a multiset of lowercase letters a-z.
// The zero value is an empty bag.
type Bag struct {
	counts [alphabetSize]int
	total  int
}

// New builds a Bag from a string, keeping only letters (case-folded).
// Non-ASCII letters are dropped along with punctuation and digits.
func New(source string) Bag {
	var b Bag
	for _, r := range source {
		r = unicode.ToLower(r)
		if r >= 'a' && r <= 'z' {
			b.counts[r-'a']++
			b.total++
		}
	}
	return b
}

// Contains reports whether at least one of the given letter is available.
func (b Bag) Contains(c byte) bool {
	return b.Count(c) > 0
}

// Count returns how many of the given letter are available.
func (b Bag) Count(c byte) int {
	c = lower(c)
	if c < 'a' || c > 'z' {
		return 0
	}
	return b.counts[c-'a']
}

// Subtract removes each letter of s from the bag. Removing a letter that
// is not present returns an error wrapping internalerr.ErrUnderflow and
// leaves the bag unchanged.
func (b *Bag) Subtract(s string) error {
	trial := *b
	for i := 0; i < len(s); i++ {
		c := lower(s[i])
		if c < 'a' || c > 'z' {
			return fmt.Errorf("subtract %q: %w", s[i], internalerr.ErrInvalidInput)
		}
		idx := c - 'a'
		if trial.counts[idx] <= 0 {
			return fmt.Errorf("subtract %q: %w", c, internalerr.ErrUnderflow)
		}
		trial.counts[idx]--
		trial.total--
	}
	*b = trial
	return nil
}

// MustSubtract removes letters whose availability the caller has already
// established. An underflow here is an invariant violation, so it panics.
func (b *Bag) MustSubtract(s string) {
	if err := b.Subtract(s); err != nil {
		panic(fmt.Sprintf("letterbag: %v", err))
	}
}

// Add puts the letters of s back into the bag. Non-letter bytes are ignored.
func (b *Bag) Add(s string) {
	for i := 0; i < len(s); i++ {
		c := lower(s[i])
		if c >= 'a' && c <= 'z' {
			b.counts[c-'a']++
			b.total++
		}
	}
}

// Total returns the number of letters in the bag.
func (b Bag) Total() int {
	return b.total
}

// IsEmpty reports whether no letters remain.
func (b Bag) IsEmpty() bool {
	return b.total == 0
}

// Letters returns the distinct available letters in alphabetical order.
func (b Bag) Letters() []byte {
	out := make([]byte, 0, alphabetSize)
	for i := 0; i < alphabetSize; i++ {
		if b.counts[i] > 0 {
			out = append(out, byte('a'+i))
		}
	}
	return out
}

// SortedString returns every letter (with multiplicity) sorted, for
// display and for canonical comparison keys.
func (b Bag) SortedString() string {
	var sb strings.Builder
	sb.Grow(b.total)
	for i := 0; i < alphabetSize; i++ {
		for n := 0; n < b.counts[i]; n++ {
			sb.WriteByte(byte('a' + i))
		}
	}
	return sb.String()
}

// Equal reports whether two bags hold exactly the same letter counts.
func (b Bag) Equal(other Bag) bool {
	return b.counts == other.counts
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
