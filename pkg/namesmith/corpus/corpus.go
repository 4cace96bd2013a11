// Package corpus locates and loads the name lists the character models
// are trained on. Datasets are declared in a YAML manifest mapping a
// dataset name to its first-name and surname files; file contents are
// hashed so trained models can be cached and invalidated by content.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
)

// Dataset names the source files for one training corpus, relative to
// the manifest's directory.
type Dataset struct {
	FirstFiles []string `yaml:"first"`
	LastFiles  []string `yaml:"last"`
}

// Manifest is a parsed dataset declaration file plus the directory the
// declared paths resolve against.
type Manifest struct {
	Datasets map[string]Dataset `yaml:"datasets"`
	Default  string             `yaml:"default"`

	dir string
}

// LoadManifest reads and parses a YAML dataset manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Datasets) == 0 {
		return nil, fmt.Errorf("manifest %s declares no datasets", path)
	}
	if m.Default == "" {
		names := m.Names()
		m.Default = names[0]
	}
	if _, ok := m.Datasets[m.Default]; !ok {
		return nil, fmt.Errorf("manifest %s: default dataset %q not declared", path, m.Default)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// Names lists the declared dataset names, sorted.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Datasets))
	for name := range m.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dataset resolves a dataset by name; the empty string selects the
// manifest default.
func (m *Manifest) Dataset(name string) (Dataset, error) {
	if name == "" {
		name = m.Default
	}
	ds, ok := m.Datasets[name]
	if !ok {
		return Dataset{}, fmt.Errorf("dataset %q: %w", name, internalerr.ErrUnknownDataset)
	}
	return ds, nil
}

// FirstNames loads and concatenates the dataset's first-name files.
func (m *Manifest) FirstNames(ds Dataset) ([]string, error) {
	return m.loadAll(ds.FirstFiles)
}

// Surnames loads and concatenates the dataset's surname files.
func (m *Manifest) Surnames(ds Dataset) ([]string, error) {
	return m.loadAll(ds.LastFiles)
}

func (m *Manifest) loadAll(files []string) ([]string, error) {
	var names []string
	for _, f := range files {
		loaded, err := LoadFile(filepath.Join(m.dir, f))
		if err != nil {
			return nil, err
		}
		names = append(names, loaded...)
	}
	if len(names) == 0 {
		return nil, internalerr.ErrCorpusMissing
	}
	return names, nil
}

// Hash returns a hex sha256 over the dataset's file contents, in
// declared order, with file names mixed in. Models cached under this
// key stay valid until the underlying lists actually change.
func (m *Manifest) Hash(ds Dataset) (string, error) {
	h := sha256.New()
	for _, f := range append(append([]string{}, ds.FirstFiles...), ds.LastFiles...) {
		raw, err := os.ReadFile(filepath.Join(m.dir, f))
		if err != nil {
			return "", fmt.Errorf("hash corpus: %w", err)
		}
		fmt.Fprintf(h, "%s\x00", f)
		h.Write(raw)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LoadFile reads one name list: one name per line, blank lines and
// #-comments skipped, surrounding whitespace trimmed.
func LoadFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name list: %w", err)
	}
	var names []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}
