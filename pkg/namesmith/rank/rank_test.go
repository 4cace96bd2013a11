package rank

import (
	"testing"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
)

var corpus = []string{
	"anna", "bella", "carla", "daniel", "elena", "fiona", "gavin",
	"helena", "ivan", "julia", "karin", "lena", "marina", "nina",
	"oliver", "petra", "rosa", "simon", "tania", "viktor", "wanda",
	"harris", "morton", "welden", "carson", "linden", "barnes",
}

func testModels(t *testing.T, n int) []*markov.Model {
	t.Helper()
	m := markov.Train(corpus)
	models := make([]*markov.Model, n)
	for i := range models {
		models[i] = m
	}
	return models
}

func TestScoreMatchesBreakdownTotal(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 2)
	segments := []string{"marlen", "davio"}

	b := s.ScoreWithBreakdown(segments, models)
	if got := s.Score(segments, models); got != b.Total {
		t.Errorf("Score = %f, breakdown total = %f", got, b.Total)
	}
	sum := b.Likelihood + b.Balance + b.Vowels + b.Diversity + b.Repetition + b.Boundary
	if diff := b.Total - sum; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("breakdown components sum to %f, total %f", sum, b.Total)
	}
}

func TestScoreBalancePenalty(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 2)

	even := s.ScoreWithBreakdown([]string{"marina", "welden"}, models)
	skewed := s.ScoreWithBreakdown([]string{"mar", "inawelden"}, models)
	if even.Balance != 0 {
		t.Errorf("equal-length segments should carry no balance penalty, got %f", even.Balance)
	}
	if skewed.Balance >= 0 {
		t.Errorf("skewed segment lengths should be penalized, got %f", skewed.Balance)
	}
}

func TestScoreVowelDeviation(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 1)

	// "marine": 3 vowels of 6, deviation 0.1.
	// "brn" is all consonants, deviation 0.4.
	near := s.ScoreWithBreakdown([]string{"marine"}, models)
	far := s.ScoreWithBreakdown([]string{"brn"}, models)
	if near.Vowels <= far.Vowels {
		t.Errorf("larger vowel-ratio deviation should score worse: %f vs %f", near.Vowels, far.Vowels)
	}
}

func TestScoreStartDiversityBonus(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 2)

	distinct := s.ScoreWithBreakdown([]string{"marina", "welden"}, models)
	same := s.ScoreWithBreakdown([]string{"marina", "morden"}, models)
	if distinct.Diversity <= same.Diversity {
		t.Errorf("distinct starting letters should earn a larger bonus: %f vs %f", distinct.Diversity, same.Diversity)
	}
}

func TestScoreBigramOverlapPenalty(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 2)

	overlapping := s.ScoreWithBreakdown([]string{"marlen", "varlet"}, models)
	if overlapping.Repetition >= 0 {
		t.Errorf("shared bigrams across segments should be penalized, got %f", overlapping.Repetition)
	}
	clean := s.ScoreWithBreakdown([]string{"mino", "seral"}, models)
	if clean.Repetition != 0 {
		t.Errorf("segments with no shared bigram should carry no penalty, got %f", clean.Repetition)
	}
}

func TestScoreInitialsIgnoredByStructuralTerms(t *testing.T) {
	s := NewScorer(DefaultWeights())
	models := testModels(t, 3)

	b := s.ScoreWithBreakdown([]string{"marina", "j", "welden"}, models)
	if b.Balance != 0 {
		t.Errorf("single-letter segment should not enter the balance variance, got %f", b.Balance)
	}
}

func TestDedupeByName(t *testing.T) {
	in := []Candidate{
		{Name: "Mira Holt", Score: 1, Segments: []string{"mira", "holt"}},
		{Name: "mira holt", Score: 2, Segments: []string{"mirah", "olt"}},
		{Name: "Rilo Tham", Score: 3, Segments: []string{"rilo", "tham"}},
	}
	out := Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("Dedupe kept %d candidates, want 2", len(out))
	}
	if out[0].Name != "Mira Holt" || out[1].Name != "Rilo Tham" {
		t.Errorf("unexpected survivors: %v", out)
	}
}

func TestDedupePermutedSegments(t *testing.T) {
	in := []Candidate{
		{Name: "Patt Silly Loy", Score: 1, Segments: []string{"patt", "silly", "loy"}},
		{Name: "Silly Patt Loy", Score: 2, Segments: []string{"silly", "patt", "loy"}},
	}
	out := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("permuted duplicate survived: %v", out)
	}
	if out[0].Name != "Patt Silly Loy" {
		t.Errorf("first occurrence should win, got %q", out[0].Name)
	}
}

func TestMaxPerLabel(t *testing.T) {
	cases := []struct{ n, want int }{
		{1, 2}, {5, 2}, {10, 4}, {20, 8},
	}
	for _, c := range cases {
		if got := MaxPerLabel(c.n); got != c.want {
			t.Errorf("MaxPerLabel(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestSelectDiverseQuotaBound(t *testing.T) {
	var pool []Candidate
	names := []string{"aron", "belis", "coran", "delia", "emron", "faris", "golan", "heris"}
	for i, n := range names {
		pool = append(pool, Candidate{
			Name:     n,
			Score:    float64(len(names) - i),
			Label:    "First Last",
			Segments: []string{n[:2], n[2:]},
		})
	}
	pool = append(pool, Candidate{
		Name: "I. Moran", Score: 0.5, Label: "I. Last",
		Segments: []string{"i", "moran"},
	})

	out := SelectDiverse(pool, 5, 2.0, nil)
	if len(out) != 5 {
		t.Fatalf("selected %d, want 5", len(out))
	}
	counts := map[string]int{}
	for _, c := range out {
		counts[c.Label]++
	}
	// Quota for n=5 is 2, so the diversity pass caps each label at 2 and
	// the leftover slots are filled quota-free.
	if counts["I. Last"] == 0 {
		t.Error("minority label should appear once quotas bite")
	}
}

func TestSelectDiverseOverlapPenalty(t *testing.T) {
	pool := []Candidate{
		{Name: "Marlo Vent", Score: 10, Label: "First Last", Segments: []string{"marlo", "vent"}},
		{Name: "Vent Marlo", Score: 9.9, Label: "First Last", Segments: []string{"vent", "marlo"}},
		{Name: "Tilda Bren", Score: 7, Label: "First Last", Segments: []string{"tilda", "bren"}},
	}
	out := SelectDiverse(pool, 2, 2.0, nil)
	if len(out) != 2 {
		t.Fatalf("selected %d, want 2", len(out))
	}
	if out[0].Name != "Marlo Vent" {
		t.Errorf("highest score should go first, got %q", out[0].Name)
	}
	// "Vent Marlo" shares both segments with the first pick; a penalty of
	// 2.0 per shared segment drops it below "Tilda Bren".
	if out[1].Name != "Tilda Bren" {
		t.Errorf("overlap penalty should prefer the dissimilar candidate, got %q", out[1].Name)
	}
}

func TestSelectDiverseFillIgnoresQuota(t *testing.T) {
	var pool []Candidate
	for i, n := range []string{"aron", "belis", "coran", "delia"} {
		pool = append(pool, Candidate{
			Name:     n,
			Score:    float64(10 - i),
			Label:    "First Last",
			Segments: []string{n[:2], n[2:]},
		})
	}
	out := SelectDiverse(pool, 4, 2.0, nil)
	if len(out) != 4 {
		t.Fatalf("fill pass should top up to 4 despite the quota, got %d", len(out))
	}
}
