// Package types provides type definitions for structured data used throughout the interview-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Confidence describes how a skill mention was matched against the taxonomy.
type Confidence string

const (
	// ConfidenceExact means the canonical skill name appeared in the text.
	ConfidenceExact Confidence = "exact"
	// ConfidenceSynonym means a known synonym or alias appeared in the text.
	ConfidenceSynonym Confidence = "synonym"
)

// Importance describes how strongly a job description demands a skill.
type Importance string

const (
	// ImportanceRequired is used for skills under "required"/"must have" phrasing.
	ImportanceRequired Importance = "required"
	// ImportancePreferred is used for skills under "preferred"/"nice to have" phrasing.
	ImportancePreferred Importance = "preferred"
	// ImportanceMentioned is the default when no qualifier is found.
	ImportanceMentioned Importance = "mentioned"
)

// SkillMatch is a single skill detected in a piece of text.
type SkillMatch struct {
	Skill      string     `json:"skill"`                // canonical name from the taxonomy
	Category   string     `json:"category"`             // taxonomy category ID
	Confidence Confidence `json:"confidence"`           // exact or synonym
	Matched    string     `json:"matched,omitempty"`    // the surface form found in the text
	Offset     int        `json:"offset"`               // rune offset of the first occurrence
	Importance Importance `json:"importance,omitempty"` // set for JD extractions only
}

// ExtractedSkillSet is an ordered set of skills found in one text.
// Order follows first occurrence in the source text; each canonical
// skill appears at most once.
type ExtractedSkillSet struct {
	Skills []SkillMatch `json:"skills"`
}

// Names returns the canonical skill names in extraction order.
func (s *ExtractedSkillSet) Names() []string {
	names := make([]string, len(s.Skills))
	for i, m := range s.Skills {
		names[i] = m.Skill
	}
	return names
}

// Contains reports whether the set includes the given canonical skill name.
func (s *ExtractedSkillSet) Contains(skill string) bool {
	for _, m := range s.Skills {
		if m.Skill == skill {
			return true
		}
	}
	return false
}

// Lookup returns the match for a canonical skill name, if present.
func (s *ExtractedSkillSet) Lookup(skill string) (SkillMatch, bool) {
	for _, m := range s.Skills {
		if m.Skill == skill {
			return m, true
		}
	}
	return SkillMatch{}, false
}

// Len returns the number of distinct skills in the set.
func (s *ExtractedSkillSet) Len() int {
	return len(s.Skills)
}
