// Package questions serves the embedded interview question bank and
// filters it by skill, category, company, round and difficulty.
package questions

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/interview-prep/internal/schemas"
)

//go:embed questions.json
var defaultData embed.FS

// Question is a single interview question with its classification tags.
type Question struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Skills     []string `json:"skills,omitempty"`
	Category   string   `json:"category,omitempty"`
	Company    string   `json:"company,omitempty"`
	Round      string   `json:"round,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// Filter selects questions; empty fields match everything.
type Filter struct {
	Skill      string
	Category   string
	Company    string
	Round      string
	Difficulty string
}

// Bank is an immutable, indexed question collection.
type Bank struct {
	questions  []Question
	bySkill    map[string][]int
	byCategory map[string][]int
}

// Load parses the embedded default question bank.
func Load() (*Bank, error) {
	data, err := defaultData.ReadFile("questions.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded question bank: %w", err)
	}
	return Parse(data)
}

// LoadFile parses a question bank from an external JSON file.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file %s: %w", path, err)
	}
	bank, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid question file %s: %w", path, err)
	}
	return bank, nil
}

// Parse validates and indexes raw question bank JSON. Duplicate IDs keep
// the first occurrence, matching how the original datasets were merged.
func Parse(data []byte) (*Bank, error) {
	if err := schemas.Validate("questions", data); err != nil {
		return nil, fmt.Errorf("question bank schema validation failed: %w", err)
	}

	var doc struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question bank JSON: %w", err)
	}

	bank := &Bank{
		bySkill:    make(map[string][]int),
		byCategory: make(map[string][]int),
	}

	seen := make(map[string]bool)
	for _, q := range doc.Questions {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true

		idx := len(bank.questions)
		bank.questions = append(bank.questions, q)
		for _, skill := range q.Skills {
			key := strings.ToLower(skill)
			bank.bySkill[key] = append(bank.bySkill[key], idx)
		}
		if q.Category != "" {
			bank.byCategory[q.Category] = append(bank.byCategory[q.Category], idx)
		}
	}

	return bank, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns every question in load order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (Question, bool) {
	for _, q := range b.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// ForSkill returns up to n questions practicing a skill, preferring
// questions tagged with the skill itself and falling back to questions
// from the same taxonomy category. Order is deterministic (load order).
func (b *Bank) ForSkill(skill, category string, n int) []Question {
	if n <= 0 {
		return nil
	}

	var out []Question
	used := make(map[string]bool)

	for _, idx := range b.bySkill[strings.ToLower(skill)] {
		if len(out) == n {
			return out
		}
		out = append(out, b.questions[idx])
		used[b.questions[idx].ID] = true
	}

	for _, idx := range b.byCategory[category] {
		if len(out) == n {
			return out
		}
		if !used[b.questions[idx].ID] {
			out = append(out, b.questions[idx])
		}
	}

	return out
}

// Select returns all questions matching the filter, in load order.
func (b *Bank) Select(f Filter) []Question {
	var out []Question
	for _, q := range b.questions {
		if f.Skill != "" && !hasSkill(q, f.Skill) {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Company != "" && !strings.EqualFold(q.Company, f.Company) {
			continue
		}
		if f.Round != "" && q.Round != f.Round {
			continue
		}
		if f.Difficulty != "" && q.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

func hasSkill(q Question, skill string) bool {
	for _, s := range q.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}
