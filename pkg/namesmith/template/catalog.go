package template

import (
	"math/rand"
)

// MinLettersForHyphen keeps hyphenated-surname shapes off short inputs.
const MinLettersForHyphen = 16

// maxSelected caps how many templates Select returns per request.
const maxSelected = 5

// catalog is the fixed, ordered set of name shapes, simplest first.
var catalog = []Template{
	{Label: "Mononym", Segments: []Spec{
		{First, 3, 10},
	}},
	{Label: "I. Last", Segments: []Spec{
		{Initial, 1, 1},
		{Last, 2, 5},
	}},
	{Label: "First Last", Segments: []Spec{
		{First, 3, 8},
		{Last, 3, 9},
	}},
	{Label: "First M. Last", Segments: []Spec{
		{First, 3, 7},
		{Initial, 1, 1},
		{Last, 3, 8},
	}},
	{Label: "First Middle Last", Segments: []Spec{
		{First, 3, 7},
		{Middle, 3, 6},
		{Last, 3, 8},
	}},
	{Label: "First M. M. Last", Segments: []Spec{
		{First, 3, 7},
		{Initial, 1, 1},
		{Initial, 1, 1},
		{Last, 4, 9},
	}},
	{Label: "First M. Last-Last", Segments: []Spec{
		{First, 3, 7},
		{Initial, 1, 1},
		{Last, 3, 8},
		{HyphenatedLast, 3, 8},
	}},
	{Label: "First M. M. Last-Last", Segments: []Spec{
		{First, 3, 7},
		{Initial, 1, 1},
		{Initial, 1, 1},
		{Last, 3, 8},
		{HyphenatedLast, 3, 8},
	}},
	{Label: "First Middle Last-Last", Segments: []Spec{
		{First, 3, 7},
		{Middle, 3, 6},
		{Last, 3, 8},
		{HyphenatedLast, 3, 8},
	}},
	{Label: "First Middle Middle Last-Last", Segments: []Spec{
		{First, 3, 7},
		{Middle, 3, 6},
		{Middle, 3, 6},
		{Last, 3, 8},
		{HyphenatedLast, 3, 8},
	}},
}

// List returns copies of every catalog template in order.
func List() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		out[i] = t.clone()
	}
	return out
}

// ByLabel looks up a catalog template by its display label.
func ByLabel(label string) (Template, bool) {
	for _, t := range catalog {
		if t.Label == label {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// Select picks up to five templates viable for n letters, in randomized
// order. Hyphenated-surname shapes are excluded below MinLettersForHyphen,
// and templates missing any required role are dropped (used when the
// caller pins a first or last name). If nothing fits, a single ad-hoc
// template sized to n is synthesized.
func Select(rng *rand.Rand, n int, requiredRoles map[Role]bool) []Template {
	var viable []Template
	for _, t := range catalog {
		if !t.Viable(n) {
			continue
		}
		if t.HasRole(HyphenatedLast) && n < MinLettersForHyphen {
			continue
		}
		if missingRole(t, requiredRoles) {
			continue
		}
		viable = append(viable, t.clone())
	}

	if len(viable) == 0 {
		return []Template{custom(n)}
	}

	rng.Shuffle(len(viable), func(i, j int) {
		viable[i], viable[j] = viable[j], viable[i]
	})
	if len(viable) > maxSelected {
		viable = viable[:maxSelected]
	}
	return viable
}

func missingRole(t Template, required map[Role]bool) bool {
	for r := range required {
		if !t.HasRole(r) {
			return true
		}
	}
	return false
}

// custom synthesizes a fallback template for letter counts no catalog
// entry covers: short inputs get an initial+name or name+name shape,
// very long inputs a 4-segment shape with the remainder on the first.
func custom(n int) Template {
	switch {
	case n <= 3:
		return Template{Label: "I. Last", Segments: []Spec{
			{Initial, 1, 1},
			{Last, n - 1, n - 1},
		}}
	case n <= 5:
		return Template{Label: "First Last", Segments: []Spec{
			{First, 2, n - 2},
			{Last, 2, n - 2},
		}}
	default:
		per := n / 4
		rem := n % 4
		return Template{Label: "First M. Last-Last", Segments: []Spec{
			{First, per, per + rem},
			{Initial, 1, 1},
			{Last, per, per + 3},
			{HyphenatedLast, per, per + 3},
		}}
	}
}

// Relax widens every non-initial segment of t to bounds [2, m] where m
// leaves two letters for each other non-initial segment, preserving the
// label. It returns false when n cannot supply two letters per non-initial
// segment (plus one for each initial).
func Relax(t Template, n int) (Template, bool) {
	initials := 0
	nonInitial := 0
	for _, s := range t.Segments {
		if s.Role == Initial {
			initials++
		} else {
			nonInitial++
		}
	}

	budget := n - initials
	if nonInitial == 0 || budget < 2*nonInitial {
		return Template{}, false
	}

	relaxed := t.clone()
	maxLen := budget - 2*(nonInitial-1)
	for i := range relaxed.Segments {
		if relaxed.Segments[i].Role == Initial {
			continue
		}
		relaxed.Segments[i].MinLen = 2
		relaxed.Segments[i].MaxLen = maxLen
	}
	return relaxed, true
}
