package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetContainsCaseInsensitive(t *testing.T) {
	s := NewSet([]string{"Hello", "world"})
	if !s.Contains("hello") || !s.Contains("WORLD") {
		t.Error("membership should be case-insensitive")
	}
	if s.Contains("other") {
		t.Error("unexpected membership")
	}
}

func TestNilSetIsEmpty(t *testing.T) {
	var s *Set
	if s.Contains("anything") {
		t.Error("nil set should contain nothing")
	}
	if s.Len() != 0 {
		t.Error("nil set should have length 0")
	}
}

func TestLoadFileSkipsBlanksAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("alpha\n\n# comment\nbeta\n  gamma  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("loaded %d words, want 3", s.Len())
	}
	if !s.Contains("gamma") {
		t.Error("whitespace should be trimmed from entries")
	}
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "nosuch.txt"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("missing file should load as an empty set")
	}
}

func TestBlocklist(t *testing.T) {
	b := Blocklist()
	if !b.Contains("hell") {
		t.Error("known blocked segment missing")
	}
	if b.Contains("mira") {
		t.Error("ordinary segment should not be blocked")
	}
}
