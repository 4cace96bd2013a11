package solver

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
	"github.com/lexicraft/namesmith/pkg/namesmith/template"
)

// Scored is one solved candidate: its segments in template order plus
// the raw per-segment model likelihood.
type Scored struct {
	Segments []string
	Score    float64
}

// Options tunes a Solve run.
type Options struct {
	Attempts int
	TempMin  float64
	TempMax  float64
	Fixed    map[int]string // segment index → pinned lowercase text
}

// Solve runs the generation loop for one template: bounded attempts of
// construction followed by both refinement passes, deduplicated within
// the template and sorted by raw model score descending. The sampling
// temperature escalates linearly from TempMin to TempMax across the
// attempt budget so later attempts explore more aggressively.
func Solve(rng *rand.Rand, bag letterbag.Bag, tmpl template.Template, models []*markov.Model, opts Options) []Scored {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 500
	}
	tempMin := opts.TempMin
	if tempMin <= 0 {
		tempMin = TempMin
	}
	tempMax := opts.TempMax
	if tempMax <= 0 {
		tempMax = TempMax
	}
	if tempMax < tempMin {
		tempMax = tempMin
	}

	frozen := make(map[int]bool, len(opts.Fixed))
	for i := range opts.Fixed {
		frozen[i] = true
	}

	var results []Scored
	seen := make(map[string]bool)

	for attempt := 0; attempt < attempts; attempt++ {
		progress := 0.0
		if attempts > 1 {
			progress = float64(attempt) / float64(attempts-1)
		}
		temperature := tempMin + (tempMax-tempMin)*progress

		segments, ok := GenerateCandidate(rng, bag, tmpl, models, opts.Fixed, temperature)
		if !ok {
			continue
		}

		refined := Refine(rng, segments, models, frozen)
		refined = RefineSyllables(rng, refined, models, frozen)

		key := strings.Join(refined, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true

		results = append(results, Scored{
			Segments: refined,
			Score:    scoreSegments(refined, models),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
