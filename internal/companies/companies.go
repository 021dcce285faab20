// Package companies serves the static per-company interview profiles:
// roles, levels, interview round structure and required-skill listings
// used as gap-analysis targets when no job description is available.
package companies

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
)

//go:embed companies.json
var defaultData embed.FS

// InterviewRound describes one round of a company's interview loop.
type InterviewRound struct {
	Round       int      `json:"round"`
	Name        string   `json:"name"`
	DurationMin int      `json:"duration_min,omitempty"`
	Focus       []string `json:"focus,omitempty"`
}

// Role is a company's profile for one role family.
type Role struct {
	Levels          []string         `json:"levels,omitempty"`
	Skills          []string         `json:"skills"`
	InterviewRounds []InterviewRound `json:"interview_rounds,omitempty"`
}

// Company is one employer with its per-role interview profiles.
type Company struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Roles map[string]Role `json:"roles"`
}

// Catalog is the loaded, indexed company dataset.
type Catalog struct {
	Companies        []Company         `json:"companies"`
	RoleDescriptions map[string]string `json:"role_descriptions,omitempty"`

	byID map[string]int
}

// Load parses the embedded default company dataset.
func Load() (*Catalog, error) {
	data, err := defaultData.ReadFile("companies.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded company data: %w", err)
	}
	return Parse(data)
}

// LoadFile parses a company dataset from an external JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read company file %s: %w", path, err)
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid company file %s: %w", path, err)
	}
	return catalog, nil
}

// Parse validates and indexes raw company JSON.
func Parse(data []byte) (*Catalog, error) {
	if err := schemas.Validate("companies", data); err != nil {
		return nil, fmt.Errorf("company schema validation failed: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse company JSON: %w", err)
	}

	// IDs are matched case-insensitively, so the index is keyed on the
	// lowercased form and IDs differing only in case count as duplicates.
	catalog.byID = make(map[string]int, len(catalog.Companies))
	for i, c := range catalog.Companies {
		key := strings.ToLower(c.ID)
		if _, dup := catalog.byID[key]; dup {
			return nil, fmt.Errorf("duplicate company ID %q", c.ID)
		}
		catalog.byID[key] = i
	}

	return &catalog, nil
}

// Get returns a company by ID.
func (c *Catalog) Get(id string) (Company, bool) {
	idx, ok := c.byID[strings.ToLower(id)]
	if !ok {
		return Company{}, false
	}
	return c.Companies[idx], true
}

// SkillResolver resolves raw text against the taxonomy. Satisfied by
// extraction.Matcher.
type SkillResolver interface {
	Extract(text string) *types.ExtractedSkillSet
}

// TargetSkills resolves a company role's required-skill listing into an
// extracted skill set usable as a gap-analysis target. Listed names are
// resolved through the taxonomy so categories line up with resume
// extractions; names unknown to the taxonomy are kept with an empty
// category rather than dropped.
func (c *Catalog) TargetSkills(companyID, role string, matcher SkillResolver) (*types.ExtractedSkillSet, error) {
	company, ok := c.Get(companyID)
	if !ok {
		return nil, fmt.Errorf("unknown company %q", companyID)
	}
	r, ok := company.Roles[role]
	if !ok {
		return nil, fmt.Errorf("company %q has no role %q", companyID, role)
	}

	result := &types.ExtractedSkillSet{Skills: []types.SkillMatch{}}
	for i, name := range r.Skills {
		resolved := matcher.Extract(name)
		if resolved.Len() > 0 {
			m := resolved.Skills[0]
			if result.Contains(m.Skill) {
				continue
			}
			m.Offset = i
			m.Importance = types.ImportanceRequired
			result.Skills = append(result.Skills, m)
			continue
		}
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == "" || result.Contains(canonical) {
			continue
		}
		result.Skills = append(result.Skills, types.SkillMatch{
			Skill:      canonical,
			Confidence: types.ConfidenceExact,
			Matched:    canonical,
			Offset:     i,
			Importance: types.ImportanceRequired,
		})
	}

	return result, nil
}
