package filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"fancylink/pkg/formats"

	"github.com/sahilm/fuzzy"
)

type FilterMode int

const (
	FilterModeNone FilterMode = iota
	FilterModeExact
	FilterModeContains
	FilterModeRegex
	FilterModeFuzzy
)

// maxTypoDistance is how many edits a mistyped key may be from a real one.
const maxTypoDistance = 2

var modeNames = map[string]FilterMode{
	"exact":    FilterModeExact,
	"contains": FilterModeContains,
	"regex":    FilterModeRegex,
	"fuzzy":    FilterModeFuzzy,
}

// ParseMode maps a --match value to a FilterMode.
func ParseMode(name string) (FilterMode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return FilterModeNone, fmt.Errorf("unknown match mode %q (use exact, contains, regex or fuzzy)", name)
}

type StringFilter struct {
	Pattern string
	Mode    FilterMode
	regex   *regexp.Regexp
}

func NewStringFilter(pattern string, mode FilterMode) (*StringFilter, error) {
	f := &StringFilter{
		Pattern: pattern,
		Mode:    mode,
	}

	if pattern == "" {
		f.Mode = FilterModeNone
	}

	if f.Mode == FilterModeRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
		}
		f.regex = re
	}

	return f, nil
}

func (f *StringFilter) Match(s string) bool {
	switch f.Mode {
	case FilterModeNone:
		return true
	case FilterModeExact:
		return strings.EqualFold(s, f.Pattern)
	case FilterModeContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(f.Pattern))
	case FilterModeRegex:
		return f.regex != nil && f.regex.MatchString(s)
	case FilterModeFuzzy:
		return len(fuzzy.Find(f.Pattern, []string{s})) > 0
	default:
		return true
	}
}

// formatSource lets fuzzy rank formats by "key name".
type formatSource []formats.Format

func (s formatSource) String(i int) string {
	return s[i].Key + " " + s[i].Name
}

func (s formatSource) Len() int {
	return len(s)
}

// Formats returns the formats f matches on key or name. Fuzzy results are
// ranked best first; every other mode keeps the input order.
func Formats(list []formats.Format, f *StringFilter) []formats.Format {
	if f == nil || f.Mode == FilterModeNone {
		return list
	}

	if f.Mode == FilterModeFuzzy {
		matches := fuzzy.FindFrom(f.Pattern, formatSource(list))
		out := make([]formats.Format, 0, len(matches))
		for _, m := range matches {
			out = append(out, list[m.Index])
		}
		return out
	}

	out := make([]formats.Format, 0, len(list))
	for _, fm := range list {
		if f.Match(fm.Key) || f.Match(fm.Name) {
			out = append(out, fm)
		}
	}
	return out
}

// Similar returns up to limit candidates that look like what the user meant
// by key: fuzzy subsequence matches first, then candidates contained in key,
// then candidates within a couple of typos.
func Similar(key string, candidates []string, limit int) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || limit <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(c string) bool {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
		return len(out) >= limit
	}

	for _, m := range fuzzy.Find(key, candidates) {
		if add(m.Str) {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, c := range candidates {
		if len(fuzzy.Find(c, []string{key})) > 0 && add(c) {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, c := range candidates {
		if LevenshteinDistance(key, c) <= maxTypoDistance && add(c) {
			return out
		}
	}
	return out
}

// LevenshteinDistance is the case-insensitive edit distance between s1 and s2,
// counted in runes.
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	previousRow := make([]int, len(r2)+1)
	currentRow := make([]int, len(r2)+1)

	for i := 0; i <= len(r2); i++ {
		previousRow[i] = i
	}

	for i := 0; i < len(r1); i++ {
		currentRow[0] = i + 1

		for j := 0; j < len(r2); j++ {
			cost := 1
			if unicode.ToLower(r1[i]) == unicode.ToLower(r2[j]) {
				cost = 0
			}

			deletion := currentRow[j] + 1
			insertion := previousRow[j+1] + 1
			substitution := previousRow[j] + cost

			currentRow[j+1] = min(deletion, insertion, substitution)
		}

		previousRow, currentRow = currentRow, previousRow
	}

	return previousRow[len(r2)]
}
