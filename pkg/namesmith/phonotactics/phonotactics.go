// Package phonotactics enforces hard rules about which letter sequences
// are pronounceable, based on a closed hand-authored grammar of English
// onset/coda clusters and vowel digraphs. It is used both for final
// segment validation and for lookahead filtering during construction.
package phonotactics

import (
	"strings"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
)

const (
	vowels     = "aeiouy"
	consonants = "bcdfghjklmnpqrstvwxz"

	// MaxConsonantRun and MaxVowelRun bound consecutive same-class runs
	// inside a segment. Vowel runs of exactly two are allowed only when
	// the pair is a listed digraph.
	MaxConsonantRun = 3
	MaxVowelRun     = 2
)

// Valid word-initial consonant clusters.
var validOnsets2 = makeSet(
	"bl", "br", "ch", "cl", "cr", "dh", "dr", "dw", "fl", "fr", "gh",
	"gl", "gn", "gr", "gw", "kh", "kl", "kn", "kr", "kw", "ph", "pl",
	"pr", "ps", "qu", "rh", "sc", "sh", "sk", "sl", "sm", "sn", "sp",
	"st", "sv", "sw", "th", "tr", "ts", "tw", "vl", "vr", "wh", "wr", "zh",
)

var validOnsets3 = makeSet(
	"chr", "phr", "sch", "scr", "shr", "sph", "spl", "spr", "squ", "str", "thr",
)

// Valid word-final consonant clusters.
var validCodas2 = makeSet(
	"ch", "ck", "ct", "dg", "ds", "ff", "ft", "gh", "gs", "ks", "lb",
	"lc", "ld", "lf", "lk", "ll", "lm", "ln", "lp", "ls", "lt", "lv",
	"lz", "mb", "mn", "mp", "ms", "mt", "nc", "nd", "ng", "nk", "nn",
	"ns", "nt", "nx", "nz", "ph", "ps", "pt", "rb", "rc", "rd", "rf",
	"rg", "rk", "rl", "rm", "rn", "rp", "rs", "rt", "rv", "rz", "sh",
	"sk", "sm", "sp", "ss", "st", "th", "ts", "tt", "tz", "wl", "wn",
	"ws", "xt", "xn",
)

var validCodas3 = makeSet(
	"cts", "fts", "lch", "lds", "lfs", "lks", "lls", "lms", "lps",
	"lts", "mbs", "mps", "nce", "nch", "ncs", "nds", "ngs", "nks",
	"nse", "nth", "nts", "nze", "rbs", "rch", "rds", "rfs", "rks",
	"rls", "rms", "rns", "rps", "rse", "rst", "rth", "rts", "sks",
	"sts", "tch", "ths",
)

// Vowel digraphs acceptable as two consecutive vowels.
var validVowelPairs = makeSet(
	"ae", "ai", "ao", "au", "ay", "ea", "ee", "ei", "eo", "eu", "ey",
	"ia", "ie", "io", "iu", "oa", "oe", "oi", "oo", "ou", "oy", "ua",
	"ue", "ui", "uo", "uy", "ya", "ye", "yi", "yo", "yu",
)

func makeSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

// IsVowel reports whether c is a vowel (y counts as a vowel).
func IsVowel(c byte) bool {
	return strings.IndexByte(vowels, c) >= 0
}

// IsConsonant reports whether c is a consonant letter.
func IsConsonant(c byte) bool {
	return strings.IndexByte(consonants, c) >= 0
}

// Onset extracts the initial consonant cluster (before the first vowel).
func Onset(segment string) string {
	for i := 0; i < len(segment); i++ {
		if IsVowel(segment[i]) {
			return segment[:i]
		}
	}
	return segment
}

// Coda extracts the final consonant cluster (after the last vowel).
func Coda(segment string) string {
	for i := len(segment) - 1; i >= 0; i-- {
		if IsVowel(segment[i]) {
			return segment[i+1:]
		}
	}
	return segment
}

// ValidOnset reports whether a consonant cluster may begin a segment.
func ValidOnset(cluster string) bool {
	switch len(cluster) {
	case 0, 1:
		return true
	case 2:
		_, ok := validOnsets2[cluster]
		return ok
	case 3:
		_, ok := validOnsets3[cluster]
		return ok
	}
	return false
}

// ValidCoda reports whether a consonant cluster may end a segment.
func ValidCoda(cluster string) bool {
	switch len(cluster) {
	case 0, 1:
		return true
	case 2:
		_, ok := validCodas2[cluster]
		return ok
	case 3:
		_, ok := validCodas3[cluster]
		return ok
	}
	return false
}

// ValidVowelPair reports whether two adjacent vowels form a listed digraph.
func ValidVowelPair(pair string) bool {
	_, ok := validVowelPairs[pair]
	return ok
}

// ValidSegment checks every phonotactic hard constraint: single letters
// are always valid (initials); longer segments need at least one vowel,
// a legal onset and coda, and no excessive consonant or vowel runs.
func ValidSegment(segment string) bool {
	if len(segment) == 0 {
		return false
	}
	if len(segment) == 1 {
		c := segment[0]
		return c >= 'a' && c <= 'z'
	}

	hasVowel := false
	for i := 0; i < len(segment); i++ {
		if IsVowel(segment[i]) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return false
	}

	if onset := Onset(segment); len(onset) > 1 && !ValidOnset(onset) {
		return false
	}
	if coda := Coda(segment); len(coda) > 1 && !ValidCoda(coda) {
		return false
	}
	if hasExcessiveConsonantRun(segment) {
		return false
	}
	return !hasExcessiveVowelRun(segment)
}

func hasExcessiveConsonantRun(segment string) bool {
	run := 0
	for i := 0; i < len(segment); i++ {
		if IsConsonant(segment[i]) {
			run++
			if run > MaxConsonantRun {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func hasExcessiveVowelRun(segment string) bool {
	run := 0
	for i := 0; i < len(segment); i++ {
		if IsVowel(segment[i]) {
			run++
			if run > MaxVowelRun {
				return true
			}
			if run == 2 && !ValidVowelPair(segment[i-1:i+1]) {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// couldBeOnsetPrefix reports whether the cluster is a complete legal
// onset or a strict prefix of a longer one.
func couldBeOnsetPrefix(cluster string) bool {
	switch len(cluster) {
	case 0, 1:
		return true
	case 2:
		if _, ok := validOnsets2[cluster]; ok {
			return true
		}
		for o := range validOnsets3 {
			if strings.HasPrefix(o, cluster) {
				return true
			}
		}
		return false
	case 3:
		_, ok := validOnsets3[cluster]
		return ok
	}
	return false
}

// couldBeCodaPrefix reports whether the cluster is a complete legal coda
// or a strict prefix of a longer one.
func couldBeCodaPrefix(cluster string) bool {
	switch len(cluster) {
	case 0, 1:
		return true
	case 2:
		if _, ok := validCodas2[cluster]; ok {
			return true
		}
		for c := range validCodas3 {
			if strings.HasPrefix(c, cluster) {
				return true
			}
		}
		return false
	case 3:
		_, ok := validCodas3[cluster]
		return ok
	}
	return false
}

func countTrailing(s string, isClass func(byte) bool) int {
	n := 0
	for i := len(s) - 1; i >= 0; i-- {
		if !isClass(s[i]) {
			break
		}
		n++
	}
	return n
}

// Filter eliminates next-character candidates that would steer a partial
// segment into a phonotactic dead end: consonant or vowel runs past their
// limits, onset clusters that cannot complete into anything legal, coda
// clusters near the end that cannot complete, or a final character that
// would leave a multi-letter segment vowelless.
func Filter(candidates []markov.Candidate, partial string, position, targetLen int) []markov.Candidate {
	result := candidates[:0:0]
	for _, cand := range candidates {
		ch := cand.Char
		test := partial + string(ch)
		remaining := targetLen - position - 1

		if IsConsonant(ch) && countTrailing(test, IsConsonant) > MaxConsonantRun {
			continue
		}

		if IsVowel(ch) {
			trailingVowels := countTrailing(test, IsVowel)
			if trailingVowels > MaxVowelRun {
				continue
			}
			if trailingVowels == 2 && !ValidVowelPair(test[len(test)-2:]) {
				continue
			}
		}

		if position == 0 || (len(test) <= 3 && allConsonants(test)) {
			if onset := Onset(test); len(onset) > 1 && !couldBeOnsetPrefix(onset) {
				continue
			}
		}

		if remaining <= 2 && IsConsonant(ch) {
			if trailing := Coda(test); len(trailing) > 1 && !couldBeCodaPrefix(trailing) {
				continue
			}
		}

		if remaining == 0 && len(test) > 1 && Onset(test) == test {
			continue
		}

		result = append(result, cand)
	}
	return result
}

func allConsonants(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsConsonant(s[i]) {
			return false
		}
	}
	return true
}
