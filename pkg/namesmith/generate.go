package namesmith

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/lexicraft/namesmith/pkg/namesmith/internalerr"
	"github.com/lexicraft/namesmith/pkg/namesmith/letterbag"
	"github.com/lexicraft/namesmith/pkg/namesmith/phonotactics"
	"github.com/lexicraft/namesmith/pkg/namesmith/rank"
	"github.com/lexicraft/namesmith/pkg/namesmith/solver"
	"github.com/lexicraft/namesmith/pkg/namesmith/template"
)

// Request describes one generation run.
type Request struct {
	Phrase string

	// N is the number of results wanted; zero means 15.
	N int

	// Template pins a single catalog template by label; empty lets the
	// letter count pick.
	Template string

	// FixedFirst pins the first-name slot verbatim. FixedLast pins the
	// surname slots and understands hyphen forms: "Jones" fills the
	// primary surname, "-Jones" the hyphenated one, "Smith-Jones" both.
	FixedFirst string
	FixedLast  string

	// TempMin and TempMax override the sampling temperature ramp; zero
	// keeps the defaults.
	TempMin float64
	TempMax float64

	// AllowWords disables the common-English-word filter.
	AllowWords bool

	// Seed drives all randomness; equal requests with equal seeds
	// produce identical responses.
	Seed int64
}

// Result is one generated name.
type Result struct {
	Name     string
	Score    float64
	Template string
	Segments []string
}

// Response carries the outcome of a run. Infeasible is set when the
// request was well-formed but no name could be produced, which is an
// empty result, not an error.
type Response struct {
	RunID      string
	Results    []Result
	Warnings   []string
	Infeasible bool
}

// lowVowelRatio is the vowel share below which results get sparse.
const lowVowelRatio = 0.15

// Generate runs the full pipeline: template resolution, per-template
// solving, word filtering, composite scoring, formatting, dedup, and
// diversity selection. Requests with unusable input (under three
// letters, unknown template label) fail with an error; requests that
// are merely unsatisfiable return an infeasible empty response.
func (g *Generator) Generate(req Request) (Response, error) {
	rng := rand.New(rand.NewSource(req.Seed))
	resp := Response{RunID: newRunID(rng)}

	normalized := Normalize(req.Phrase)
	if len(normalized) < 3 {
		return resp, fmt.Errorf("phrase %q: %w: need at least 3 letters", req.Phrase, internalerr.ErrInvalidInput)
	}

	nResults := req.N
	if nResults <= 0 {
		nResults = 15
	}

	bag := letterbag.New(normalized)
	nLetters := bag.Total()

	vowels := 0
	for i := 0; i < len(normalized); i++ {
		if phonotactics.IsVowel(normalized[i]) {
			vowels++
		}
	}
	if float64(vowels)/float64(nLetters) < lowVowelRatio {
		resp.Warnings = append(resp.Warnings, "very few vowels available, results may be limited")
	}

	fixedFirst := Normalize(req.FixedFirst)
	lastText, hyphText := parseFixedLast(req.FixedLast)

	requiredRoles := map[template.Role]bool{}
	if fixedFirst != "" {
		requiredRoles[template.First] = true
	}
	if lastText != "" {
		requiredRoles[template.Last] = true
	}
	if hyphText != "" {
		requiredRoles[template.HyphenatedLast] = true
	}

	explicit := req.Template != ""
	var templates []template.Template
	if explicit {
		t, ok := template.ByLabel(req.Template)
		if !ok {
			return resp, fmt.Errorf("template %q: %w", req.Template, internalerr.ErrUnknownTemplate)
		}
		for role := range requiredRoles {
			if !t.HasRole(role) {
				return resp, fmt.Errorf("template %q has no %s segment: %w", req.Template, role, internalerr.ErrInvalidInput)
			}
		}
		templates = []template.Template{t}
	} else {
		templates = template.Select(rng, nLetters, requiredRoles)
	}

	// Letters left for the free segments once pinned names are taken out.
	remaining := bag
	hasFixed := fixedFirst != "" || lastText != "" || hyphText != ""
	if hasFixed {
		for _, text := range []string{fixedFirst, lastText, hyphText} {
			if text == "" {
				continue
			}
			if err := remaining.Subtract(text); err != nil {
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("fixed name %q needs letters the phrase does not have", text))
				resp.Infeasible = true
				return resp, nil
			}
		}
		templates, resp.Warnings = fitTemplatesToFixed(templates, fixedFirst, lastText, hyphText, remaining.Total(), nLetters, explicit, resp.Warnings)
		if len(templates) == 0 {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("no template can accommodate the fixed name(s) with %d remaining letters", remaining.Total()))
			resp.Infeasible = true
			return resp, nil
		}
	} else if explicit {
		t := templates[0]
		if !t.Viable(nLetters) {
			relaxed, ok := template.Relax(t, nLetters)
			if !ok {
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("template %q cannot work with %d letters", req.Template, nLetters))
				resp.Infeasible = true
				return resp, nil
			}
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("template %q is designed for %d-%d letters but input has %d, bounds relaxed", req.Template, t.TotalMin(), t.TotalMax(), nLetters))
			templates = []template.Template{relaxed}
		}
	}

	attempts := 500
	if nLetters > 20 {
		attempts = 800
	}
	if nLetters > 30 {
		attempts = 1200
		resp.Warnings = append(resp.Warnings, "long input, generation may take a moment")
	}

	var pool []rank.Candidate
	for _, t := range templates {
		fixedMap := buildFixedSegments(t, fixedFirst, lastText, hyphText)
		frozen := make(map[int]bool, len(fixedMap))
		for i := range fixedMap {
			frozen[i] = true
		}
		models := g.modelsForTemplate(t)

		solved := solver.Solve(rng, bag, t, models, solver.Options{
			Attempts: attempts,
			TempMin:  req.TempMin,
			TempMax:  req.TempMax,
			Fixed:    fixedMap,
		})

		for _, s := range solved {
			if g.rejectSegments(s.Segments, frozen, req.AllowWords) {
				continue
			}

			composite := g.scorer.Score(s.Segments, models)

			// Cosmetic apostrophe goes in after scoring so it never
			// influences ranking.
			display := template.MaybeApostrophe(rng, s.Segments, t, frozen)
			name := template.FormatName(display, t)

			pool = append(pool, rank.Candidate{
				Name:     name,
				Score:    composite,
				Label:    t.Label,
				Segments: s.Segments,
			})
		}
	}

	pool = rank.Dedupe(pool)
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })

	overlapIgnore := map[int]bool{}
	if len(templates) > 0 {
		for i := range buildFixedSegments(templates[0], fixedFirst, lastText, hyphText) {
			overlapIgnore[i] = true
		}
	}
	selected := rank.SelectDiverse(pool, nResults, g.weights.SegmentOverlap, overlapIgnore)

	for _, c := range selected {
		resp.Results = append(resp.Results, Result{
			Name:     c.Name,
			Score:    c.Score,
			Template: c.Label,
			Segments: c.Segments,
		})
	}
	resp.Infeasible = len(resp.Results) == 0
	return resp, nil
}

// fitTemplatesToFixed keeps the templates whose pinned slots accept the
// fixed names and whose free slots can absorb the leftover letters.
// With an explicitly chosen template, both checks fall back to relaxed
// bounds before giving up: first to fit the pinned text, then to fit
// the remaining letter count.
func fitTemplatesToFixed(templates []template.Template, fixedFirst, lastText, hyphText string, remaining, nLetters int, explicit bool, warnings []string) ([]template.Template, []string) {
	var viable []template.Template
	for _, t := range templates {
		fixedMap := buildFixedSegments(t, fixedFirst, lastText, hyphText)

		if !fixedFits(t, fixedMap) {
			if !explicit {
				continue
			}
			relaxed, ok := template.Relax(t, nLetters)
			if !ok {
				continue
			}
			t = relaxed
			fixedMap = buildFixedSegments(t, fixedFirst, lastText, hyphText)
			if !fixedFits(t, fixedMap) {
				continue
			}
		}

		min, max := freeBounds(t, fixedMap)
		if min <= remaining && remaining <= max {
			viable = append(viable, t)
			continue
		}
		if explicit {
			relaxed, ok := template.Relax(t, nLetters)
			if !ok {
				continue
			}
			fixedMapR := buildFixedSegments(relaxed, fixedFirst, lastText, hyphText)
			min, max = freeBounds(relaxed, fixedMapR)
			if min <= remaining && remaining <= max {
				warnings = append(warnings, fmt.Sprintf("template %q bounds relaxed to fit input, results may not be ideal", t.Label))
				viable = append(viable, relaxed)
			}
		}
	}
	return viable, warnings
}

func fixedFits(t template.Template, fixedMap map[int]string) bool {
	for i, text := range fixedMap {
		spec := t.Segments[i]
		if len(text) < spec.MinLen || len(text) > spec.MaxLen {
			return false
		}
	}
	return true
}

// freeBounds sums the length bounds of the non-pinned segments.
func freeBounds(t template.Template, fixedMap map[int]string) (min, max int) {
	for i, spec := range t.Segments {
		if _, ok := fixedMap[i]; ok {
			continue
		}
		min += spec.MinLen
		max += spec.MaxLen
	}
	return min, max
}

// rejectSegments applies the blocklist unconditionally and the
// common-word filter to free segments of four or more letters.
func (g *Generator) rejectSegments(segments []string, frozen map[int]bool, allowWords bool) bool {
	for i, seg := range segments {
		if frozen[i] {
			continue
		}
		if g.blocklist.Contains(seg) {
			return true
		}
		if !allowWords && len(seg) >= 4 && g.common.Contains(seg) {
			return true
		}
	}
	return false
}

// parseFixedLast splits a pinned surname into its primary and
// hyphenated parts: "Jones" → (jones, ""), "-Jones" → ("", jones),
// "Smith-Jones" → (smith, jones), "Jones-" → (jones, "").
func parseFixedLast(fixedLast string) (lastText, hyphText string) {
	raw := strings.TrimSpace(fixedLast)
	if raw == "" {
		return "", ""
	}
	if strings.HasPrefix(raw, "-") && len(raw) > 1 {
		return "", Normalize(raw[1:])
	}
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		return Normalize(raw[:i]), Normalize(raw[i+1:])
	}
	return Normalize(raw), ""
}

// buildFixedSegments maps pinned names onto template slots, taking the
// first slot of each matching role.
func buildFixedSegments(t template.Template, fixedFirst, lastText, hyphText string) map[int]string {
	fixed := map[int]string{}
	var firstDone, lastDone, hyphDone bool
	for i, spec := range t.Segments {
		switch {
		case fixedFirst != "" && spec.Role == template.First && !firstDone:
			fixed[i] = fixedFirst
			firstDone = true
		case lastText != "" && spec.Role == template.Last && !lastDone:
			fixed[i] = lastText
			lastDone = true
		case hyphText != "" && spec.Role == template.HyphenatedLast && !hyphDone:
			fixed[i] = hyphText
			hyphDone = true
		}
	}
	return fixed
}

// newRunID derives a ULID entirely from the request's random source, so
// the whole response, id included, reproduces for a given seed.
func newRunID(rng *rand.Rand) string {
	ms := uint64(rng.Int63()) & (1<<48 - 1)
	return ulid.MustNew(ms, rng).String()
}
