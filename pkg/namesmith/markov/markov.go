// Package markov implements an order-3 (trigram) character model over name
// strings. It provides segment scoring (how name-like is this string?) and
// guided next-character ranking restricted to the letters still available
// in a bag. The model is immutable after Train and safe for shared reads.
package markov

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"strings"

	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
)

const (
	// Order is the context length: trigram = 2 context chars + 1 predicted.
	Order = 2

	// Start pads the beginning of every training string and every scored
	// segment; End marks termination and participates in smoothing.
	Start = "^^"
	End   = '$'

	alphabet = "abcdefghijklmnopqrstuvwxyz"
)

// Backoff penalties and the unseen-character floor. Empirically tuned;
// treat as knobs, not derivations.
const (
	BigramPenalty  = -1.0
	UnigramPenalty = -2.0
	FloorLogProb   = -15.0

	// EmptySegmentScore is returned by Score for an empty segment.
	EmptySegmentScore = -100.0
)

// Model holds smoothed log-probability tables for trigram contexts plus a
// unigram fallback. Build one with Train or decode a cached payload.
type Model struct {
	logProbs map[string]map[byte]float64
	unigram  map[byte]float64
}

// Candidate is one ranked next-character option.
type Candidate struct {
	Char    byte
	LogProb float64
}

// Train builds a model from a list of name strings. Names are lowercased;
// entries containing non-letter characters are skipped. Counts are
// converted to log-probabilities with add-one smoothing over a-z plus the
// end marker, and a smoothed unigram table (end marker excluded) is kept
// as the final backoff.
func Train(names []string) *Model {
	transitions := make(map[string]map[byte]int)
	unigramCounts := make(map[byte]int)

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || !isAlpha(name) {
			continue
		}
		padded := Start + name + string(End)
		for i := 0; i+Order < len(padded); i++ {
			ctx := padded[i : i+Order]
			next := padded[i+Order]
			row := transitions[ctx]
			if row == nil {
				row = make(map[byte]int)
				transitions[ctx] = row
			}
			row[next]++
			if next != End {
				unigramCounts[next]++
			}
		}
	}

	// alphabet + end marker for smoothing
	smoothed := len(alphabet) + 1

	m := &Model{
		logProbs: make(map[string]map[byte]float64, len(transitions)),
		unigram:  make(map[byte]float64, len(alphabet)),
	}
	for ctx, row := range transitions {
		total := smoothed
		for _, n := range row {
			total += n
		}
		probs := make(map[byte]float64, smoothed)
		for i := 0; i < len(alphabet); i++ {
			c := alphabet[i]
			probs[c] = math.Log(float64(row[c]+1) / float64(total))
		}
		probs[End] = math.Log(float64(row[End]+1) / float64(total))
		m.logProbs[ctx] = probs
	}

	totalUnigram := len(alphabet)
	for _, n := range unigramCounts {
		totalUnigram += n
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		m.unigram[c] = math.Log(float64(unigramCounts[c]+1) / float64(totalUnigram))
	}

	return m
}

// Score returns the log-probability of a segment under the model,
// including the start padding and end-marker transition.
func (m *Model) Score(segment string) float64 {
	if segment == "" {
		return EmptySegmentScore
	}
	padded := Start + strings.ToLower(segment) + string(End)
	score := 0.0
	for i := 0; i+Order < len(padded); i++ {
		score += m.LogProb(padded[i:i+Order], padded[i+Order])
	}
	return score
}

// ScoreName sums segment scores for a complete multi-segment name.
func (m *Model) ScoreName(segments []string) float64 {
	total := 0.0
	for _, seg := range segments {
		total += m.Score(seg)
	}
	return total
}

// LogProb resolves the probability of char c following ctx using the
// backoff chain: exact trigram context, then the last context character
// as a bigram context (with BigramPenalty), then the unigram table (with
// UnigramPenalty), then FloorLogProb for entirely unseen characters.
func (m *Model) LogProb(ctx string, c byte) float64 {
	if row, ok := m.logProbs[ctx]; ok {
		if lp, ok := row[c]; ok {
			return lp
		}
	}
	if len(ctx) > 0 {
		bigram := ctx[len(ctx)-1:]
		if row, ok := m.logProbs[bigram]; ok {
			if lp, ok := row[c]; ok {
				return lp + BigramPenalty
			}
		}
	}
	if lp, ok := m.unigram[c]; ok {
		return lp + UnigramPenalty
	}
	return FloorLogProb
}

// LikelyNext ranks the characters still available in the bag by their
// backoff-resolved probability after the given context. Context shorter
// than Order is padded with start markers. Ties break alphabetically;
// the result is ordered by descending log-probability.
func (m *Model) LikelyNext(ctx string, bag letterbag.Bag) []Candidate {
	if len(ctx) > Order {
		ctx = ctx[len(ctx)-Order:]
	}
	if len(ctx) < Order {
		ctx = Start[:Order-len(ctx)] + ctx
	}

	available := bag.Letters()
	candidates := make([]Candidate, 0, len(available))

	row, ok := m.logProbs[ctx]
	if !ok {
		// Backoff to bigram context, then unigram.
		row, ok = m.logProbs[ctx[len(ctx)-1:]]
	}
	if ok {
		for _, c := range available {
			if lp, has := row[c]; has {
				candidates = append(candidates, Candidate{Char: c, LogProb: lp})
			}
		}
	} else {
		for _, c := range available {
			if lp, has := m.unigram[c]; has {
				candidates = append(candidates, Candidate{Char: c, LogProb: lp})
			}
		}
	}

	// Stable ordering: descending probability, ties alphabetical.
	// available is already alphabetical, so a stable sort keeps ties ordered.
	sortCandidates(candidates)
	return candidates
}

// sortCandidates orders by descending log-probability, preserving the
// alphabetical order of equal-probability entries (insertion sort keeps
// the input order stable and candidate lists are at most 26 long).
func sortCandidates(cands []Candidate) {
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && cands[j].LogProb > cands[j-1].LogProb; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
}

// payload is the gob wire form used by the model cache.
type payload struct {
	LogProbs map[string]map[byte]float64
	Unigram  map[byte]float64
}

// Encode serializes the model for caching.
func (m *Model) Encode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(payload{
		LogProbs: m.logProbs,
		Unigram:  m.unigram,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a model from an Encode payload. A payload with
// missing tables is rejected so that a truncated cache row reads as
// corruption rather than as an empty model.
func Decode(data []byte) (*Model, error) {
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return nil, err
	}
	if len(p.LogProbs) == 0 || len(p.Unigram) == 0 {
		return nil, errEmptyPayload
	}
	return &Model{logProbs: p.LogProbs, unigram: p.Unigram}, nil
}

var errEmptyPayload = errors.New("markov: empty model payload")

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
