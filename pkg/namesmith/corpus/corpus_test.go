package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
)

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"first_a.txt": "anna\nbella\n\n# comment line\ncarla\n",
		"first_b.txt": "  daniel  \nelena\n",
		"last.txt":    "harris\nmorton\nwelden\n",
		"names.yaml": `default: classic
datasets:
  classic:
    first: [first_a.txt, first_b.txt]
    last: [last.txt]
  tiny:
    first: [first_b.txt]
    last: [last.txt]
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadFileSkipsBlanksAndComments(t *testing.T) {
	dir := writeTestData(t)
	names, err := LoadFile(filepath.Join(dir, "first_a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"anna", "bella", "carla"}
	if len(names) != len(want) {
		t.Fatalf("loaded %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestManifestDatasetLookup(t *testing.T) {
	dir := writeTestData(t)
	m, err := LoadManifest(filepath.Join(dir, "names.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	ds, err := m.Dataset("classic")
	if err != nil {
		t.Fatal(err)
	}
	first, err := m.FirstNames(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 5 {
		t.Errorf("classic first names = %v, want 5 entries", first)
	}
	last, err := m.Surnames(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 3 {
		t.Errorf("classic surnames = %v, want 3 entries", last)
	}
}

func TestManifestDefaultDataset(t *testing.T) {
	dir := writeTestData(t)
	m, err := LoadManifest(filepath.Join(dir, "names.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ds, err := m.Dataset("")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.FirstFiles) != 2 {
		t.Errorf("empty name should resolve the default dataset, got %v", ds)
	}
}

func TestManifestUnknownDataset(t *testing.T) {
	dir := writeTestData(t)
	m, err := LoadManifest(filepath.Join(dir, "names.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Dataset("nosuch"); !errors.Is(err, internalerr.ErrUnknownDataset) {
		t.Errorf("unknown dataset error = %v, want ErrUnknownDataset", err)
	}
}

func TestHashTracksContent(t *testing.T) {
	dir := writeTestData(t)
	m, err := LoadManifest(filepath.Join(dir, "names.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ds, _ := m.Dataset("classic")

	h1, err := m.Hash(ds)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := m.Hash(ds)
	if h1 != h2 {
		t.Error("hash should be stable across reads of unchanged files")
	}

	if err := os.WriteFile(filepath.Join(dir, "last.txt"), []byte("harris\nmorton\nwelden\nnewname\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h3, err := m.Hash(ds)
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Error("hash should change when a source file changes")
	}
}

func TestHashDiffersAcrossDatasets(t *testing.T) {
	dir := writeTestData(t)
	m, err := LoadManifest(filepath.Join(dir, "names.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	classic, _ := m.Dataset("classic")
	tiny, _ := m.Dataset("tiny")
	h1, _ := m.Hash(classic)
	h2, _ := m.Hash(tiny)
	if h1 == h2 {
		t.Error("different file sets should hash differently")
	}
}
