// Package taxonomy loads and indexes the controlled skills vocabulary.
// The taxonomy maps category IDs to canonical skill names with optional
// synonyms and importance weights. It is immutable once loaded; all three
// core operations (extract, analyze, plan) receive it as an explicit value.
package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-prep/internal/schemas"
)

//go:embed skills_taxonomy.json
var defaultData embed.FS

// Skill is one canonical skill with its known surface variants.
type Skill struct {
	Name     string   `json:"name" validate:"required"`
	Synonyms []string `json:"synonyms,omitempty" validate:"dive,required"`
	Weight   float64  `json:"weight,omitempty" validate:"gte=0,lte=1"`
}

// Category groups related skills under a human-readable name.
type Category struct {
	Name   string  `json:"name" validate:"required"`
	Weight float64 `json:"weight,omitempty" validate:"gte=0,lte=1"`
	Skills []Skill `json:"skills" validate:"required,min=1,dive"`
}

// Taxonomy is the full controlled vocabulary, keyed by category ID.
type Taxonomy struct {
	Version    int                 `json:"version,omitempty"`
	Categories map[string]Category `json:"categories" validate:"required,min=1"`

	byCanonical map[string]string // canonical name -> category ID
}

const defaultWeight = 0.5

// Load parses the embedded default taxonomy. Failure is a programming
// error (the dataset ships with the binary), so it is surfaced as a
// regular error and treated as fatal by callers.
func Load() (*Taxonomy, error) {
	data, err := defaultData.ReadFile("skills_taxonomy.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded taxonomy: %w", err)
	}
	return Parse(data)
}

// LoadFile parses a taxonomy from an external JSON file, overriding the
// embedded default.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	tax, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy file %s: %w", path, err)
	}
	return tax, nil
}

// Parse validates raw JSON against the taxonomy schema and struct rules,
// then builds the lookup index.
func Parse(data []byte) (*Taxonomy, error) {
	if err := schemas.Validate("skills_taxonomy", data); err != nil {
		return nil, fmt.Errorf("taxonomy schema validation failed: %w", err)
	}

	var tax Taxonomy
	if err := json.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&tax); err != nil {
		return nil, fmt.Errorf("taxonomy validation failed: %w", err)
	}

	tax.byCanonical = make(map[string]string)
	for id, cat := range tax.Categories {
		for _, skill := range cat.Skills {
			if existing, dup := tax.byCanonical[skill.Name]; dup && existing != id {
				return nil, fmt.Errorf("skill %q appears in categories %q and %q", skill.Name, existing, id)
			}
			tax.byCanonical[skill.Name] = id
		}
	}

	return &tax, nil
}

// CategoryOf returns the category ID a canonical skill belongs to.
func (t *Taxonomy) CategoryOf(skill string) (string, bool) {
	id, ok := t.byCanonical[skill]
	return id, ok
}

// Weight returns the priority weight for a canonical skill: the skill's
// own weight if set, else its category weight, else a neutral default.
func (t *Taxonomy) Weight(skill string) float64 {
	id, ok := t.byCanonical[skill]
	if !ok {
		return defaultWeight
	}
	cat := t.Categories[id]
	for _, s := range cat.Skills {
		if s.Name == skill {
			if s.Weight > 0 {
				return s.Weight
			}
			break
		}
	}
	if cat.Weight > 0 {
		return cat.Weight
	}
	return defaultWeight
}

// SkillNames returns all canonical skill names, sorted.
func (t *Taxonomy) SkillNames() []string {
	names := make([]string, 0, len(t.byCanonical))
	for name := range t.byCanonical {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryIDs returns all category IDs, sorted.
func (t *Taxonomy) CategoryIDs() []string {
	ids := make([]string, 0, len(t.Categories))
	for id := range t.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
