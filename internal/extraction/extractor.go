// Package extraction detects taxonomy skills in free text using
// case-insensitive, punctuation-normalized word-boundary matching.
// No NLP model is involved; matching is purely lexical.
package extraction

import (
	"sort"
	"strings"

	"github.com/jonathan/interview-prep/internal/taxonomy"
	"github.com/jonathan/interview-prep/internal/types"
)

// pattern is one pre-tokenized surface form to search for.
type pattern struct {
	tokens    []string
	surface   string // normalized surface, space-joined
	canonical string
	category  string
	exact     bool // surface is the canonical name itself
}

// Matcher holds the compiled surface patterns for one taxonomy.
// It is safe for concurrent use once built.
type Matcher struct {
	tax      *taxonomy.Taxonomy
	patterns []pattern
}

// NewMatcher compiles all canonical names and synonyms from the taxonomy
// into match patterns. Patterns are ordered most-specific first (more
// tokens, then longer surface), so overlapping mentions resolve to the
// longest match: "deep learning" claims its span before "learning" can.
func NewMatcher(tax *taxonomy.Taxonomy) *Matcher {
	var patterns []pattern

	for catID, cat := range tax.Categories {
		for _, skill := range cat.Skills {
			patterns = appendPattern(patterns, skill.Name, skill.Name, catID, true)
			for _, syn := range skill.Synonyms {
				patterns = appendPattern(patterns, syn, skill.Name, catID, false)
			}
		}
	}

	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if len(a.tokens) != len(b.tokens) {
			return len(a.tokens) > len(b.tokens)
		}
		if len(a.surface) != len(b.surface) {
			return len(a.surface) > len(b.surface)
		}
		if a.surface != b.surface {
			return a.surface < b.surface
		}
		// Identical surfaces: exact patterns win.
		return a.exact && !b.exact
	})

	return &Matcher{tax: tax, patterns: patterns}
}

// Taxonomy returns the taxonomy the matcher was built from.
func (m *Matcher) Taxonomy() *taxonomy.Taxonomy {
	return m.tax
}

func appendPattern(patterns []pattern, surface, canonical, category string, exact bool) []pattern {
	tokens := normalizeSurface(surface)
	if len(tokens) == 0 {
		return patterns
	}
	return append(patterns, pattern{
		tokens:    tokens,
		surface:   strings.Join(tokens, " "),
		canonical: canonical,
		category:  category,
		exact:     exact,
	})
}

// Extract returns the ordered set of canonical skills found in the text.
// Empty or unrecognized text yields an empty set, never an error. Each
// canonical skill appears once, ordered by first occurrence; a skill
// matched through its canonical name is tagged exact even when a synonym
// also appears.
func (m *Matcher) Extract(text string) *types.ExtractedSkillSet {
	result := &types.ExtractedSkillSet{Skills: []types.SkillMatch{}}
	if text == "" {
		return result
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return result
	}

	claimed := make([]bool, len(tokens))
	found := make(map[string]*types.SkillMatch)

	for _, p := range m.patterns {
		n := len(p.tokens)
		for i := 0; i+n <= len(tokens); i++ {
			if spanClaimed(claimed, i, n) || !spanEquals(tokens, i, p.tokens) {
				continue
			}
			for j := i; j < i+n; j++ {
				claimed[j] = true
			}
			record(found, p, tokens[i].offset)
		}
	}

	matches := make([]types.SkillMatch, 0, len(found))
	for _, match := range found {
		matches = append(matches, *match)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Offset != matches[j].Offset {
			return matches[i].Offset < matches[j].Offset
		}
		return matches[i].Skill < matches[j].Skill
	})

	result.Skills = matches
	return result
}

// ExtractJD extracts skills from a job description and additionally tags
// each skill with its importance (required/preferred/mentioned) derived
// from the surrounding phrasing.
func (m *Matcher) ExtractJD(text string) *types.ExtractedSkillSet {
	result := m.Extract(text)
	for i := range result.Skills {
		result.Skills[i].Importance = DetectImportance(text, result.Skills[i].Matched)
	}
	return result
}

func spanClaimed(claimed []bool, start, n int) bool {
	for i := start; i < start+n; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func spanEquals(tokens []token, start int, want []string) bool {
	for i, w := range want {
		if tokens[start+i].text != w {
			return false
		}
	}
	return true
}

// record keeps the first occurrence per canonical skill, upgrading
// confidence to exact if the canonical form is later seen.
func record(found map[string]*types.SkillMatch, p pattern, offset int) {
	conf := types.ConfidenceSynonym
	if p.exact {
		conf = types.ConfidenceExact
	}

	existing, ok := found[p.canonical]
	if !ok {
		found[p.canonical] = &types.SkillMatch{
			Skill:      p.canonical,
			Category:   p.category,
			Confidence: conf,
			Matched:    p.surface,
			Offset:     offset,
		}
		return
	}

	if offset < existing.Offset {
		existing.Offset = offset
	}
	if conf == types.ConfidenceExact && existing.Confidence == types.ConfidenceSynonym {
		existing.Confidence = types.ConfidenceExact
		existing.Matched = p.surface
	}
}
