package letterbag

import (
	"errors"
	"testing"

	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
)

func TestNewFoldsAndFilters(t *testing.T) {
	b := New("Hello, World! 42")
	if got := b.SortedString(); got != "dehllloorw" {
		t.Errorf("SortedString() = %q, want %q", got, "dehllloorw")
	}
	if b.Total() != 10 {
		t.Errorf("Total() = %d, want 10", b.Total())
	}
}

func TestCountAndContains(t *testing.T) {
	b := New("banana")
	if b.Count('a') != 3 {
		t.Errorf("Count('a') = %d, want 3", b.Count('a'))
	}
	if b.Count('N') != 2 {
		t.Errorf("Count('N') = %d, want 2 (case-folded)", b.Count('N'))
	}
	if b.Contains('z') {
		t.Error("Contains('z') = true for bag without z")
	}
	if b.Count('!') != 0 {
		t.Error("Count of non-letter should be 0")
	}
}

func TestSubtractUnderflow(t *testing.T) {
	b := New("ab")
	err := b.Subtract("z")
	if !errors.Is(err, internalerr.ErrUnderflow) {
		t.Fatalf("Subtract(\"z\") error = %v, want ErrUnderflow", err)
	}
	// Bag must be unchanged after a failed subtraction.
	if got := b.SortedString(); got != "ab" {
		t.Errorf("bag after failed subtract = %q, want %q", got, "ab")
	}
}

func TestSubtractPartialFailureLeavesBagIntact(t *testing.T) {
	b := New("abc")
	// "ad": 'a' is present, 'd' is not; nothing should be removed.
	if err := b.Subtract("ad"); err == nil {
		t.Fatal("expected error subtracting unavailable letter")
	}
	if got := b.SortedString(); got != "abc" {
		t.Errorf("bag after partial failure = %q, want %q", got, "abc")
	}
}

func TestSubtractAddRoundTrip(t *testing.T) {
	b := New("listen")
	if err := b.Subtract("silent"); err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("bag not empty after subtracting full anagram: %q", b.SortedString())
	}
	b.Add("tinsel")
	if !b.Equal(New("listen")) {
		t.Error("Add did not restore the original multiset")
	}
}

func TestMustSubtractPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSubtract on missing letter should panic")
		}
	}()
	b := New("ab")
	b.MustSubtract("q")
}

func TestValueSemantics(t *testing.T) {
	orig := New("anagram")
	cp := orig
	cp.MustSubtract("ana")
	if orig.Total() != 7 {
		t.Errorf("mutating a copy changed the original: Total() = %d", orig.Total())
	}
	if cp.Total() != 4 {
		t.Errorf("copy Total() = %d, want 4", cp.Total())
	}
}

func TestLetters(t *testing.T) {
	b := New("cabbage")
	got := string(b.Letters())
	if got != "abceg" {
		t.Errorf("Letters() = %q, want %q", got, "abceg")
	}
}

func TestEqualIgnoresConstructionOrder(t *testing.T) {
	if !New("listen").Equal(New("Silent")) {
		t.Error("anagram bags should be equal")
	}
	if New("hello").Equal(New("world")) {
		t.Error("different multisets should not be equal")
	}
}
