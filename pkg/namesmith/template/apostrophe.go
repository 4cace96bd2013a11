package template

import (
	"math/rand"
	"strings"
)

// apostropheChance is the probability a qualifying surname gets the
// cosmetic O' treatment.
const apostropheChance = 0.05

// MaybeApostrophe rarely decorates qualifying surnames ("obrien" →
// "o'brien"): only LAST and HYPHENATED_LAST segments of length >= 4
// starting with 'o' followed by a consonant, and never a frozen (pinned)
// segment. Letter content is unchanged; the apostrophe is cosmetic.
func MaybeApostrophe(rng *rand.Rand, parts []string, t Template, frozen map[int]bool) []string {
	out := make([]string, len(parts))
	copy(out, parts)
	for i, seg := range out {
		if i >= len(t.Segments) || frozen[i] {
			continue
		}
		role := t.Segments[i].Role
		if role != Last && role != HyphenatedLast {
			continue
		}
		if len(seg) >= 4 && seg[0] == 'o' && !strings.ContainsRune("aeiouy", rune(seg[1])) &&
			rng.Float64() < apostropheChance {
			out[i] = seg[:1] + "'" + seg[1:]
		}
	}
	return out
}
