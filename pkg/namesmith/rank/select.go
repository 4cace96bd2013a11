package rank

import (
	"math"
	"sort"
	"strings"
)

// Candidate is one fully scored, formatted generation result entering
// final selection.
type Candidate struct {
	Name     string
	Score    float64
	Label    string
	Segments []string
}

// Dedupe removes candidates sharing a case-insensitive full name or an
// identical sorted segment multiset (the latter catches permuted
// duplicates such as "Patt Silly Loy" / "Silly Patt Loy"). Input order
// is preserved; the first occurrence wins.
func Dedupe(candidates []Candidate) []Candidate {
	seenNames := make(map[string]bool, len(candidates))
	seenSegments := make(map[string]bool, len(candidates))
	out := candidates[:0:0]

	for _, c := range candidates {
		nameKey := strings.ToLower(c.Name)
		segKey := segmentSetKey(c.Segments)
		if seenNames[nameKey] || seenSegments[segKey] {
			continue
		}
		seenNames[nameKey] = true
		seenSegments[segKey] = true
		out = append(out, c)
	}
	return out
}

func segmentSetKey(segments []string) string {
	sorted := make([]string, len(segments))
	for i, s := range segments {
		sorted[i] = strings.ToLower(s)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// MaxPerLabel is the per-template selection quota: 40% of the requested
// result count, but never below 2.
func MaxPerLabel(nResults int) int {
	quota := int(float64(nResults) * 0.4)
	if quota < 2 {
		quota = 2
	}
	return quota
}

// SelectDiverse greedily assembles up to nResults candidates, at each
// step taking the one with the highest score after subtracting an
// overlap penalty proportional to the largest number of non-initial
// segments shared with any already-selected result (ignoring the given
// fixed-segment indices), while holding each template label to its
// quota. If quotas exhaust the pool early, remaining slots are filled
// from the leftovers in score order, ignoring quotas. Candidates should
// already be deduplicated and sorted by score descending.
func SelectDiverse(candidates []Candidate, nResults int, overlapPenalty float64, ignoreIndices map[int]bool) []Candidate {
	var final []Candidate
	labelCounts := make(map[string]int)
	remaining := append([]Candidate(nil), candidates...)
	quota := MaxPerLabel(nResults)

	for len(final) < nResults && len(remaining) > 0 {
		bestIdx := -1
		bestAdjusted := math.Inf(-1)

		for i, c := range remaining {
			if labelCounts[c.Label] >= quota {
				continue
			}
			overlap := maxSegmentOverlap(c.Segments, final, ignoreIndices)
			adjusted := c.Score - overlapPenalty*float64(overlap)
			if adjusted > bestAdjusted {
				bestAdjusted = adjusted
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		final = append(final, chosen)
		labelCounts[chosen.Label]++
	}

	// Quota-free fill pass when diversity ran out before nResults.
	for _, c := range remaining {
		if len(final) >= nResults {
			break
		}
		final = append(final, c)
	}
	return final
}

// maxSegmentOverlap counts the non-initial segments (indices outside
// ignore) shared with the most-similar already-selected candidate.
func maxSegmentOverlap(segments []string, selected []Candidate, ignore map[int]bool) int {
	cand := make(map[string]bool)
	for i, s := range segments {
		if len(s) > 1 && !ignore[i] {
			cand[strings.ToLower(s)] = true
		}
	}
	if len(cand) == 0 {
		return 0
	}

	best := 0
	for _, sel := range selected {
		shared := 0
		for i, s := range sel.Segments {
			if len(s) > 1 && !ignore[i] && cand[strings.ToLower(s)] {
				shared++
			}
		}
		if shared > best {
			best = shared
		}
	}
	return best
}
