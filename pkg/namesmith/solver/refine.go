package solver

import (
	"math/rand"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
	"github.com/lexicraft/namesmith/pkg/namesmith/phonotactics"
)

// refineIterations bounds each local-search pass.
const refineIterations = 200

// scoreSegments sums the per-segment model score, each segment scored by
// the model assigned to its slot.
func scoreSegments(segments []string, models []*markov.Model) float64 {
	total := 0.0
	for i, seg := range segments {
		total += models[i].Score(seg)
	}
	return total
}

// swappable lists segment indices eligible for refinement moves: longer
// than one letter (initials stay put) and not frozen (pinned).
func swappable(segments []string, frozen map[int]bool) []int {
	var idx []int
	for i, seg := range segments {
		if len(seg) > 1 && !frozen[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Refine hill-climbs by swapping single letters between two segments,
// accepting only strictly improving moves that keep both segments
// phonotactically valid. The letter multiset of the whole candidate is
// unchanged by construction. Returns the best state seen.
func Refine(rng *rand.Rand, segments []string, models []*markov.Model, frozen map[int]bool) []string {
	idx := swappable(segments, frozen)
	if len(idx) < 2 {
		return segments
	}

	current := append([]string(nil), segments...)
	best := append([]string(nil), segments...)
	bestScore := scoreSegments(current, models)

	for iter := 0; iter < refineIterations; iter++ {
		s1 := idx[rng.Intn(len(idx))]
		s2 := idx[rng.Intn(len(idx))]
		if s1 == s2 {
			continue
		}

		p1 := rng.Intn(len(current[s1]))
		p2 := rng.Intn(len(current[s2]))
		c1 := current[s1][p1]
		c2 := current[s2][p2]
		if c1 == c2 {
			continue
		}

		new1 := current[s1][:p1] + string(c2) + current[s1][p1+1:]
		new2 := current[s2][:p2] + string(c1) + current[s2][p2+1:]
		if !phonotactics.ValidSegment(new1) || !phonotactics.ValidSegment(new2) {
			continue
		}

		trial := append([]string(nil), current...)
		trial[s1] = new1
		trial[s2] = new2
		if score := scoreSegments(trial, models); score > bestScore {
			bestScore = score
			best = trial
			current = append([]string(nil), trial...)
		}
	}
	return best
}

// RefineSyllables applies the same acceptance discipline as Refine but
// swaps whole syllables between two segments, allowing larger structural
// moves than single-letter swaps.
func RefineSyllables(rng *rand.Rand, segments []string, models []*markov.Model, frozen map[int]bool) []string {
	idx := swappable(segments, frozen)
	if len(idx) < 2 {
		return segments
	}

	current := append([]string(nil), segments...)
	best := append([]string(nil), segments...)
	bestScore := scoreSegments(current, models)

	for iter := 0; iter < refineIterations; iter++ {
		s1 := idx[rng.Intn(len(idx))]
		s2 := idx[rng.Intn(len(idx))]
		if s1 == s2 {
			continue
		}

		syl1 := phonotactics.Syllabify(current[s1])
		syl2 := phonotactics.Syllabify(current[s2])
		if len(syl1) == 0 || len(syl2) == 0 {
			continue
		}

		i1 := rng.Intn(len(syl1))
		i2 := rng.Intn(len(syl2))
		if syl1[i1] == syl2[i2] {
			continue
		}

		new1 := joinWithReplacement(syl1, i1, syl2[i2])
		new2 := joinWithReplacement(syl2, i2, syl1[i1])
		if len(new1) <= 1 || len(new2) <= 1 {
			continue
		}
		if !phonotactics.ValidSegment(new1) || !phonotactics.ValidSegment(new2) {
			continue
		}

		trial := append([]string(nil), current...)
		trial[s1] = new1
		trial[s2] = new2
		if score := scoreSegments(trial, models); score > bestScore {
			bestScore = score
			best = trial
			current = append([]string(nil), trial...)
		}
	}
	return best
}

func joinWithReplacement(syllables []string, at int, replacement string) string {
	out := ""
	for i, s := range syllables {
		if i == at {
			out += replacement
		} else {
			out += s
		}
	}
	return out
}
