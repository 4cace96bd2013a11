// Package rank computes composite candidate scores and performs the
// final deduplication and diversity-aware selection over the pooled
// output of all attempted templates.
package rank

import (
	"math"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
	"github.com/lexicraft/namesmith/pkg/namesmith/phonotactics"
)

// Scorer combines model likelihood with structural heuristics.
type Scorer struct {
	weights Weights
}

// Weights defines the composite scoring weights. The numeric values are
// empirically tuned; treat them as knobs, not derivations.
type Weights struct {
	Balance           float64 // penalty × variance of non-initial segment lengths
	VowelDeviation    float64 // penalty × |vowel ratio − target|
	StartDiversity    float64 // bonus × distinct starting letters
	BigramOverlap     float64 // penalty × size of cross-segment bigram intersection
	Boundary          float64 // weight on segment-boundary flow score
	BoundaryConsonant float64 // per-letter penalty for boundary consonant pile-ups
	SegmentOverlap    float64 // selection-time penalty per shared segment
}

// TargetVowelRatio is the vowel share a natural name tends toward.
const TargetVowelRatio = 0.40

// DefaultWeights returns the tuned weight set.
func DefaultWeights() Weights {
	return Weights{
		Balance:           -0.1,
		VowelDeviation:    -10.0,
		StartDiversity:    0.2,
		BigramOverlap:     -0.3,
		Boundary:          0.15,
		BoundaryConsonant: -3.0,
		SegmentOverlap:    2.0,
	}
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Breakdown itemizes the composite score.
type Breakdown struct {
	Likelihood float64
	Balance    float64
	Vowels     float64
	Diversity  float64
	Repetition float64
	Boundary   float64
	Total      float64
}

// Score returns the composite score for a candidate; higher is better.
// models holds one model per segment slot, in template order.
func (s *Scorer) Score(segments []string, models []*markov.Model) float64 {
	return s.ScoreWithBreakdown(segments, models).Total
}

// ScoreWithBreakdown computes the composite score with its components:
// length-normalized model likelihood per segment, a variance penalty on
// non-initial segment lengths, a penalty on vowel-ratio deviation from
// the target, a bonus for distinct starting letters, a penalty on
// bigrams shared by every segment, and a boundary-flow term scoring how
// naturally adjacent segments would read as continuous text.
func (s *Scorer) ScoreWithBreakdown(segments []string, models []*markov.Model) Breakdown {
	var b Breakdown

	for i, seg := range segments {
		n := len(seg)
		if n < 1 {
			n = 1
		}
		b.Likelihood += models[i].Score(seg) / float64(n)
	}

	var lengths []int
	for _, seg := range segments {
		if len(seg) > 1 {
			lengths = append(lengths, len(seg))
		}
	}
	if len(lengths) > 1 {
		mean := 0.0
		for _, n := range lengths {
			mean += float64(n)
		}
		mean /= float64(len(lengths))
		variance := 0.0
		for _, n := range lengths {
			d := float64(n) - mean
			variance += d * d
		}
		variance /= float64(len(lengths))
		b.Balance = s.weights.Balance * variance
	}

	full := ""
	for _, seg := range segments {
		full += seg
	}
	if full == "" {
		b.Vowels = s.weights.VowelDeviation
	} else {
		vowelCount := 0
		for i := 0; i < len(full); i++ {
			if phonotactics.IsVowel(full[i]) {
				vowelCount++
			}
		}
		ratio := float64(vowelCount) / float64(len(full))
		b.Vowels = s.weights.VowelDeviation * math.Abs(ratio-TargetVowelRatio)
	}

	starts := map[byte]bool{}
	for _, seg := range segments {
		if seg != "" {
			starts[seg[0]] = true
		}
	}
	b.Diversity = s.weights.StartDiversity * float64(len(starts))

	b.Repetition = s.weights.BigramOverlap * float64(sharedBigrams(segments))

	boundary := 0.0
	nBoundaries := 0
	for i := 0; i+1 < len(segments); i++ {
		if len(segments[i]) > 1 && len(segments[i+1]) > 1 {
			boundary += s.scoreBoundary(segments[i], segments[i+1], models[i+1])
			nBoundaries++
		}
	}
	if nBoundaries > 0 {
		b.Boundary = s.weights.Boundary * boundary / float64(nBoundaries)
	}

	b.Total = b.Likelihood + b.Balance + b.Vowels + b.Diversity + b.Repetition + b.Boundary
	return b
}

// sharedBigrams counts the bigrams present in every multi-letter segment.
func sharedBigrams(segments []string) int {
	var sets []map[string]bool
	for _, seg := range segments {
		if len(seg) < 2 {
			continue
		}
		set := make(map[string]bool, len(seg)-1)
		for i := 0; i+1 < len(seg); i++ {
			set[seg[i:i+2]] = true
		}
		sets = append(sets, set)
	}
	if len(sets) < 2 {
		return 0
	}
	shared := 0
	for bg := range sets[0] {
		inAll := true
		for _, other := range sets[1:] {
			if !other[bg] {
				inAll = false
				break
			}
		}
		if inAll {
			shared++
		}
	}
	return shared
}

// scoreBoundary evaluates the transition between adjacent segments by
// scoring the first characters of b against the trailing context of a,
// as if the name were continuous text, plus a phonotactic penalty when
// the combined coda+onset consonant run across the boundary exceeds the
// in-segment run limit.
func (s *Scorer) scoreBoundary(a, b string, model *markov.Model) float64 {
	ctx := a
	if len(ctx) > markov.Order {
		ctx = ctx[len(ctx)-markov.Order:]
	}
	score := 0.0
	limit := 2
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		padded := ctx
		if len(padded) < markov.Order {
			padded = markov.Start[:markov.Order-len(padded)] + padded
		}
		score += model.LogProb(padded, b[i])
		ctx = (ctx + string(b[i]))
		if len(ctx) > markov.Order {
			ctx = ctx[len(ctx)-markov.Order:]
		}
	}

	pileup := len(phonotactics.Coda(a)) + len(phonotactics.Onset(b))
	if pileup > phonotactics.MaxConsonantRun {
		score += s.weights.BoundaryConsonant * float64(pileup-phonotactics.MaxConsonantRun)
	}
	return score
}
