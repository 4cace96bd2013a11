// Package template defines the catalog of name shapes: ordered lists of
// role-tagged, length-bounded segments, plus selection by letter budget,
// bound relaxation, and display formatting.
package template

import (
	"strings"
)

// Role tags the structural function of a segment within a name.
type Role int

const (
	First Role = iota
	Middle
	Last
	Initial
	HyphenatedLast
)

// String returns the canonical lowercase role name.
func (r Role) String() string {
	switch r {
	case First:
		return "first"
	case Middle:
		return "middle"
	case Last:
		return "last"
	case Initial:
		return "initial"
	case HyphenatedLast:
		return "hyph_last"
	}
	return "unknown"
}

// Spec is one typed, length-bounded segment slot. Initial slots always
// have MinLen = MaxLen = 1.
type Spec struct {
	Role   Role
	MinLen int
	MaxLen int
}

// Template is an immutable catalog entry: a labelled ordered list of
// segment specs. Relaxation produces a new Template, never mutates.
type Template struct {
	Label    string
	Segments []Spec
}

// TotalMin is the smallest letter count the template can consume.
func (t Template) TotalMin() int {
	sum := 0
	for _, s := range t.Segments {
		sum += s.MinLen
	}
	return sum
}

// TotalMax is the largest letter count the template can consume.
func (t Template) TotalMax() int {
	sum := 0
	for _, s := range t.Segments {
		sum += s.MaxLen
	}
	return sum
}

// Viable reports whether n letters fit within the template's bounds.
func (t Template) Viable(n int) bool {
	return t.TotalMin() <= n && n <= t.TotalMax()
}

// HasRole reports whether any segment carries the given role.
func (t Template) HasRole(r Role) bool {
	for _, s := range t.Segments {
		if s.Role == r {
			return true
		}
	}
	return false
}

// RoleIndex returns the index of the first segment with the given role,
// or -1 when the template has none.
func (t Template) RoleIndex(r Role) int {
	for i, s := range t.Segments {
		if s.Role == r {
			return i
		}
	}
	return -1
}

func (t Template) clone() Template {
	segs := make([]Spec, len(t.Segments))
	copy(segs, t.Segments)
	return Template{Label: t.Label, Segments: segs}
}

// FormatName renders lowercase segment parts into a display name:
// segments are capitalized, initials become "X.", and hyphenated-last
// segments attach to the preceding part with a hyphen.
func FormatName(parts []string, t Template) string {
	var formatted []string
	for i, part := range parts {
		if i >= len(t.Segments) || part == "" {
			continue
		}
		cap := capitalize(part)
		switch t.Segments[i].Role {
		case Initial:
			formatted = append(formatted, cap[:1]+".")
		case HyphenatedLast:
			if len(formatted) > 0 {
				formatted[len(formatted)-1] += "-" + cap
			} else {
				formatted = append(formatted, cap)
			}
		default:
			formatted = append(formatted, cap)
		}
	}
	return strings.Join(formatted, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	// Preserve an interior apostrophe ("o'brien" → "O'Brien").
	if i := strings.IndexByte(s, '\''); i > 0 && i+1 < len(s) {
		return strings.ToUpper(s[:1]) + s[1:i+1] + strings.ToUpper(s[i+1:i+2]) + s[i+2:]
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
