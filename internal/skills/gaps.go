// Package skills provides normalization and set operations over skill names.
package skills

import (
	"strings"

	"github.com/jonathan/skillscout/internal/types"
)

// Normalize canonicalizes one skill name: trimmed and lower-cased, interior
// whitespace collapsed to single spaces. Returns "" for blank input.
func Normalize(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}

// NewGapSet builds a SkillGapSet from raw input: each entry normalized,
// blanks dropped, duplicates removed, first-seen order preserved.
func NewGapSet(raw []string) types.SkillGapSet {
	seen := make(map[string]bool, len(raw))
	gaps := make(types.SkillGapSet, 0, len(raw))
	for _, r := range raw {
		n := Normalize(r)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		gaps = append(gaps, n)
	}
	return gaps
}

// Overlap returns the gap names present in tags, in gap order. Tag names are
// normalized before comparison so catalog tags and user input match
// regardless of casing.
func Overlap(tags []string, gaps types.SkillGapSet) []string {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		if n := Normalize(t); n != "" {
			tagSet[n] = true
		}
	}

	var matched []string
	for _, g := range gaps {
		if tagSet[g] {
			matched = append(matched, g)
		}
	}
	return matched
}
