package markov

import (
	"math"
	"testing"

	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
)

var trainingNames = []string{
	"anna", "bella", "carla", "daniel", "elena", "fiona",
	"gavin", "helena", "ivan", "julia", "karin", "lena",
	"marina", "nina", "oliver", "petra", "quentin", "rosa",
	"simon", "tania", "ursula", "viktor", "wanda", "xenia",
}

func TestScoreOrdersPlausibility(t *testing.T) {
	m := Train(trainingNames)

	likely := m.Score("lena")
	unlikely := m.Score("xqzkv")
	if likely <= unlikely {
		t.Errorf("Score(\"lena\") = %f should exceed Score(\"xqzkv\") = %f", likely, unlikely)
	}
}

func TestScoreEmptySegment(t *testing.T) {
	m := Train(trainingNames)
	if got := m.Score(""); got != EmptySegmentScore {
		t.Errorf("Score(\"\") = %f, want %f", got, EmptySegmentScore)
	}
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	m := Train(trainingNames)
	if m.Score("Anna") != m.Score("anna") {
		t.Error("Score should fold case")
	}
}

func TestTrainSkipsNonAlphaNames(t *testing.T) {
	m := Train([]string{"anna", "o'brien", "  ", "mary-jane"})
	// Only "anna" contributes; the model must still score cleanly.
	if s := m.Score("anna"); math.IsInf(s, 0) || math.IsNaN(s) {
		t.Errorf("Score(\"anna\") = %f", s)
	}
}

func TestLogProbBackoffChain(t *testing.T) {
	m := Train(trainingNames)

	// Exact context from training: "an" is common (anna, daniel...).
	tri := m.LogProb("an", 'n')

	// Unknown context backs off to the bigram table with a penalty.
	back := m.LogProb("zq", 'a')
	uni := m.unigram['a'] + UnigramPenalty
	if back != uni {
		// "q" appears as a context char in "quentin", so the bigram row
		// may exist; either way the value must be below the raw table.
		if raw, ok := m.logProbs["q"]['a']; ok {
			if back != raw+BigramPenalty {
				t.Errorf("LogProb(\"zq\", 'a') = %f, want bigram %f or unigram %f", back, raw+BigramPenalty, uni)
			}
		} else {
			t.Errorf("LogProb(\"zq\", 'a') = %f, want unigram fallback %f", back, uni)
		}
	}

	if tri >= 0 {
		t.Errorf("log-probability should be negative, got %f", tri)
	}
}

func TestLogProbFloor(t *testing.T) {
	m := Train(trainingNames)
	if got := m.LogProb("zz", '-'); got != FloorLogProb {
		t.Errorf("LogProb for unseen char = %f, want floor %f", got, FloorLogProb)
	}
}

func TestLikelyNextRestrictsToBag(t *testing.T) {
	m := Train(trainingNames)
	bag := letterbag.New("nx")

	cands := m.LikelyNext("an", bag)
	if len(cands) == 0 {
		t.Fatal("expected candidates for available letters")
	}
	for _, c := range cands {
		if c.Char != 'n' && c.Char != 'x' {
			t.Errorf("candidate %q not in bag", c.Char)
		}
	}
	// After "an", 'n' (as in "anna") should outrank 'x'.
	if cands[0].Char != 'n' {
		t.Errorf("top candidate = %q, want 'n'", cands[0].Char)
	}
}

func TestLikelyNextDescendingOrder(t *testing.T) {
	m := Train(trainingNames)
	cands := m.LikelyNext("ri", letterbag.New("anotz"))
	for i := 1; i < len(cands); i++ {
		if cands[i].LogProb > cands[i-1].LogProb {
			t.Fatalf("candidates not in descending order at %d: %f > %f",
				i, cands[i].LogProb, cands[i-1].LogProb)
		}
	}
}

func TestLikelyNextShortContextPadded(t *testing.T) {
	m := Train(trainingNames)
	// Single-char context must be padded with the start marker, not crash.
	cands := m.LikelyNext("a", letterbag.New("n"))
	if len(cands) != 1 || cands[0].Char != 'n' {
		t.Fatalf("LikelyNext with short context = %v", cands)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := Train(trainingNames)
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, seg := range []string{"lena", "viktor", "qqq"} {
		if back.Score(seg) != m.Score(seg) {
			t.Errorf("decoded model scores %q differently", seg)
		}
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	if _, err := Decode([]byte("not a gob stream")); err == nil {
		t.Error("Decode of garbage should fail")
	}
	if _, err := Decode(nil); err == nil {
		t.Error("Decode of empty payload should fail")
	}
}
