// Package namesmith turns an input phrase into pronounceable, name-like
// anagrams. Every result uses each letter of the phrase exactly once;
// segment text is sampled from character models trained on real name
// corpora, constrained by phonotactic rules, refined by local search,
// and ranked by a composite scorer.
package namesmith

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lexicraft/namesmith/pkg/namesmith/corpus"
	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
	"github.com/lexicraft/namesmith/pkg/namesmith/modelcache"
	"github.com/lexicraft/namesmith/pkg/namesmith/rank"
	"github.com/lexicraft/namesmith/pkg/namesmith/template"
	"github.com/lexicraft/namesmith/pkg/namesmith/wordlist"
)

// Generator holds the trained models and filter lists for one dataset.
// It is safe for concurrent use: Generate mutates no generator state.
type Generator struct {
	first    *markov.Model
	surname  *markov.Model
	combined *markov.Model

	weights   rank.Weights
	scorer    *rank.Scorer
	blocklist *wordlist.Set
	common    *wordlist.Set
}

// Options configures New. The three models are required; zero Weights
// select the defaults, a nil Blocklist selects the built-in one, and a
// nil CommonWords disables the English-word filter.
type Options struct {
	First    *markov.Model
	Surname  *markov.Model
	Combined *markov.Model

	Weights     rank.Weights
	Blocklist   *wordlist.Set
	CommonWords *wordlist.Set
}

// New builds a generator from already-trained models.
func New(opts Options) (*Generator, error) {
	if opts.First == nil || opts.Surname == nil || opts.Combined == nil {
		return nil, fmt.Errorf("generator: %w: all three models are required", internalerr.ErrInvalidInput)
	}
	w := opts.Weights
	if w == (rank.Weights{}) {
		w = rank.DefaultWeights()
	}
	block := opts.Blocklist
	if block == nil {
		block = wordlist.Blocklist()
	}
	return &Generator{
		first:     opts.First,
		surname:   opts.Surname,
		combined:  opts.Combined,
		weights:   w,
		scorer:    rank.NewScorer(w),
		blocklist: block,
		common:    opts.CommonWords,
	}, nil
}

// OpenOptions configures Open.
type OpenOptions struct {
	// DataDir holds the dataset manifest (names.yaml), the name list
	// files it references, and english_words.txt.
	DataDir string

	// Dataset selects a manifest entry; empty means the manifest
	// default.
	Dataset string

	// CachePath overrides the model cache location. Empty means
	// <DataDir>/.cache/models.db.
	CachePath string

	// NoCache forces retraining and skips the cache entirely.
	NoCache bool

	Weights rank.Weights
}

// Open loads the corpus for a dataset and returns a ready generator,
// training models on a cache miss and persisting them for the next run.
// Cached models are keyed by a content hash of the corpus files, so
// edits to any name list invalidate all three models for the dataset.
func Open(ctx context.Context, opts OpenOptions) (*Generator, error) {
	manifest, err := corpus.LoadManifest(filepath.Join(opts.DataDir, "names.yaml"))
	if err != nil {
		return nil, err
	}
	ds, err := manifest.Dataset(opts.Dataset)
	if err != nil {
		return nil, err
	}

	firstNames, err := manifest.FirstNames(ds)
	if err != nil {
		return nil, err
	}
	surnames, err := manifest.Surnames(ds)
	if err != nil {
		return nil, err
	}
	combinedNames := append(append([]string{}, firstNames...), surnames...)

	hash, err := manifest.Hash(ds)
	if err != nil {
		return nil, err
	}

	var cache *modelcache.Store
	if !opts.NoCache {
		path := opts.CachePath
		if path == "" {
			path = filepath.Join(opts.DataDir, ".cache", "models.db")
		}
		cache, err = modelcache.Open(ctx, path)
		if err != nil {
			// Cache trouble degrades to training from scratch.
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	dataset := opts.Dataset
	if dataset == "" {
		dataset = manifest.Default
	}
	loadModel := func(role string, names []string) (*markov.Model, error) {
		key := dataset + "/" + role
		if cache != nil {
			if m, ok := cache.Get(ctx, key, hash); ok {
				return m, nil
			}
		}
		m := markov.Train(names)
		if cache != nil {
			// A failed write (read-only cache, full disk) just means the
			// next run retrains; the fresh model is still good.
			if err := cache.Put(ctx, key, hash, m); err == nil {
				_ = cache.Prune(ctx, key, hash)
			}
		}
		return m, nil
	}

	first, err := loadModel("first", firstNames)
	if err != nil {
		return nil, err
	}
	surname, err := loadModel("surname", surnames)
	if err != nil {
		return nil, err
	}
	combined, err := loadModel("combined", combinedNames)
	if err != nil {
		return nil, err
	}

	common, err := wordlist.LoadFile(filepath.Join(opts.DataDir, "english_words.txt"))
	if err != nil {
		return nil, err
	}

	return New(Options{
		First:       first,
		Surname:     surname,
		Combined:    combined,
		Weights:     opts.Weights,
		CommonWords: common,
	})
}

// modelForRole picks the model a segment slot samples from. Mononym
// templates always use the combined model.
func (g *Generator) modelForRole(role template.Role, mononym bool) *markov.Model {
	if mononym {
		return g.combined
	}
	switch role {
	case template.First:
		return g.first
	case template.Last, template.HyphenatedLast:
		return g.surname
	default:
		return g.combined
	}
}

// modelsForTemplate returns one model per segment slot, in order.
func (g *Generator) modelsForTemplate(t template.Template) []*markov.Model {
	mononym := len(t.Segments) == 1
	models := make([]*markov.Model, len(t.Segments))
	for i, spec := range t.Segments {
		models[i] = g.modelForRole(spec.Role, mononym)
	}
	return models
}

// Normalize lowercases the phrase and strips everything but a-z.
func Normalize(phrase string) string {
	var b strings.Builder
	for _, r := range phrase {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// VerifyAnagram reports whether name uses exactly the letters of
// phrase, ignoring case, spacing, and punctuation.
func VerifyAnagram(phrase, name string) bool {
	return letterbag.New(phrase).Equal(letterbag.New(name))
}
