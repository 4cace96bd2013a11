// Package solver implements the constrained construction search: building
// phonotactically valid segments character by character under model
// guidance, assembling whole candidates that consume a letter bag exactly,
// and refining them with letter- and syllable-swap local search.
package solver

import (
	"math"
	"math/rand"

	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
	"github.com/lexicraft/namesmith/pkg/namesmith/phonotactics"
	"github.com/lexicraft/namesmith/pkg/namesmith/template"
)

const (
	// maxSubAttempts bounds retries when building a single segment.
	maxSubAttempts = 50

	// TempMin and TempMax bracket the sampling temperature; Solve
	// escalates between them across attempts to trade greediness for
	// diversity as the search proceeds.
	TempMin = 1.2
	TempMax = 2.0
)

// WeightedSample draws a character from ranked candidates using a
// temperature-scaled softmax over log-probabilities, shifted by the
// maximum for numerical stability. Temperature above 1 flattens the
// distribution; below 1 sharpens it.
func WeightedSample(rng *rand.Rand, candidates []markov.Candidate, temperature float64) (byte, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	if temperature <= 0 {
		temperature = 1.0
	}

	maxLP := candidates[0].LogProb
	for _, c := range candidates[1:] {
		if c.LogProb > maxLP {
			maxLP = c.LogProb
		}
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		w := math.Exp((c.LogProb - maxLP) / temperature)
		weights[i] = w
		total += w
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for i, c := range candidates {
		cumulative += weights[i]
		if cumulative >= r {
			return c.Char, true
		}
	}
	return candidates[len(candidates)-1].Char, true
}

// BuildSegment constructs one phonotactically valid segment from the bag,
// guided by the model. Each of up to maxSubAttempts tries picks a target
// length uniformly in [minLen, min(maxLen, bag.Total())], then samples
// characters one at a time through the lookahead filter. It returns
// ok=false when every attempt dead-ends.
func BuildSegment(rng *rand.Rand, available letterbag.Bag, minLen, maxLen int, model *markov.Model, temperature float64) (string, bool) {
	if maxLen > available.Total() {
		maxLen = available.Total()
	}
	if maxLen < minLen {
		return "", false
	}

	for attempt := 0; attempt < maxSubAttempts; attempt++ {
		bag := available
		segment := ""
		context := markov.Start
		targetLen := minLen + rng.Intn(maxLen-minLen+1)

		ok := true
		for pos := 0; pos < targetLen; pos++ {
			candidates := model.LikelyNext(context, bag)
			candidates = phonotactics.Filter(candidates, segment, pos, targetLen)
			ch, sampled := WeightedSample(rng, candidates, temperature)
			if !sampled {
				ok = false
				break
			}
			segment += string(ch)
			bag.MustSubtract(string(ch))
			context = (context + string(ch))[1:]
		}

		if ok && len(segment) >= minLen && phonotactics.ValidSegment(segment) {
			return segment, true
		}
	}
	return "", false
}

// GenerateCandidate builds all segments of a template from the bag,
// consuming it exactly. Pinned segments from fixed are placed verbatim
// and their letters subtracted up front; the remaining segments are
// built in randomized order, reserving minimum letter counts for the
// segments not yet built, with the last-built segment forced to consume
// exactly what remains. Leftover letters (possible when an interior
// segment lands short) are distributed greedily; if any letter cannot be
// placed the candidate fails.
func GenerateCandidate(rng *rand.Rand, bag letterbag.Bag, tmpl template.Template, models []*markov.Model, fixed map[int]string, temperature float64) ([]string, bool) {
	specs := tmpl.Segments
	n := len(specs)
	segments := make([]string, n)
	remaining := bag

	var order []int
	for i := 0; i < n; i++ {
		if text, ok := fixed[i]; ok {
			if remaining.Subtract(text) != nil {
				return nil, false
			}
			segments[i] = text
			continue
		}
		order = append(order, i)
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for step, idx := range order {
		spec := specs[idx]

		neededLater := 0
		for _, futureIdx := range order[step+1:] {
			neededLater += specs[futureIdx].MinLen
		}

		availableNow := remaining.Total() - neededLater
		effectiveMin := spec.MinLen
		effectiveMax := spec.MaxLen
		if availableNow < effectiveMax {
			effectiveMax = availableNow
		}
		if effectiveMax < effectiveMin {
			return nil, false
		}

		// The last segment in build order must consume exactly what is
		// left, or the multiset invariant cannot hold.
		if step == len(order)-1 {
			needed := remaining.Total()
			if needed < effectiveMin || needed > spec.MaxLen {
				return nil, false
			}
			effectiveMin = needed
			effectiveMax = needed
		}

		segment, ok := BuildSegment(rng, remaining, effectiveMin, effectiveMax, models[idx], temperature)
		if !ok {
			return nil, false
		}
		segments[idx] = segment
		remaining.MustSubtract(segment)
	}

	if !remaining.IsEmpty() && !distributeRemaining(segments, &remaining, specs, models, fixed) {
		return nil, false
	}
	return segments, true
}

// distributeRemaining inserts each leftover letter at whichever position
// of whichever non-initial, non-pinned, non-full segment yields the best
// model-score improvement while staying phonotactically valid.
func distributeRemaining(segments []string, remaining *letterbag.Bag, specs []template.Spec, models []*markov.Model, fixed map[int]string) bool {
	leftovers := remaining.SortedString()
	for i := 0; i < len(leftovers); i++ {
		ch := leftovers[i : i+1]

		bestDelta := math.Inf(-1)
		bestIdx := -1
		bestSegment := ""

		for segIdx, segment := range segments {
			spec := specs[segIdx]
			if _, pinned := fixed[segIdx]; pinned {
				continue
			}
			if spec.MaxLen == 1 || len(segment) >= spec.MaxLen {
				continue
			}
			oldScore := models[segIdx].Score(segment)
			for pos := 0; pos <= len(segment); pos++ {
				candidate := segment[:pos] + ch + segment[pos:]
				if !phonotactics.ValidSegment(candidate) {
					continue
				}
				delta := models[segIdx].Score(candidate) - oldScore
				if delta > bestDelta {
					bestDelta = delta
					bestIdx = segIdx
					bestSegment = candidate
				}
			}
		}

		if bestIdx < 0 {
			return false
		}
		segments[bestIdx] = bestSegment
		remaining.MustSubtract(ch)
	}
	return true
}
