// Package gap compares a candidate's extracted skills against a target
// role's required skills, partitioning the target set into matched,
// missing and partial skills.
package gap

import (
	"sort"

	"github.com/jonathan/interview-prep/internal/types"
)

// Policy controls the partial-match heuristic. A target skill the
// candidate lacks is classified partial when the candidate holds at
// least MinCategorySkills other skills from the same taxonomy category.
type Policy struct {
	MinCategorySkills int
}

// DefaultPolicy treats a single same-category skill as partial coverage.
var DefaultPolicy = Policy{MinCategorySkills: 1}

// Analyze produces a GapResult from candidate and target skill sets.
// The three result sets are pairwise disjoint and their union is exactly
// the target set; within each set, target extraction order is preserved.
// An exact name match always wins over a category-based partial match.
// An empty target yields an all-empty result.
func Analyze(candidate, target *types.ExtractedSkillSet, policy Policy) *types.GapResult {
	result := &types.GapResult{
		Matched: []types.GapSkill{},
		Missing: []types.GapSkill{},
		Partial: []types.GapSkill{},
	}
	if target == nil || target.Len() == 0 {
		return result
	}

	minCategory := policy.MinCategorySkills
	if minCategory <= 0 {
		minCategory = DefaultPolicy.MinCategorySkills
	}

	// Candidate skills grouped by category, for the partial heuristic.
	byCategory := make(map[string][]string)
	if candidate != nil {
		for _, m := range candidate.Skills {
			byCategory[m.Category] = append(byCategory[m.Category], m.Skill)
		}
	}

	for _, want := range target.Skills {
		gs := types.GapSkill{
			Skill:      want.Skill,
			Category:   want.Category,
			Importance: want.Importance,
		}

		if candidate != nil && candidate.Contains(want.Skill) {
			result.Matched = append(result.Matched, gs)
			continue
		}

		related := relatedSkills(byCategory[want.Category], want.Skill)
		if len(related) >= minCategory {
			gs.Evidence = related
			result.Partial = append(result.Partial, gs)
			continue
		}

		result.Missing = append(result.Missing, gs)
	}

	return result
}

// Extra returns the candidate's skills that the target does not ask for,
// in candidate extraction order. These are surfaced alongside the gap so
// a candidate can see which of their skills go beyond the role.
func Extra(candidate, target *types.ExtractedSkillSet) []types.GapSkill {
	extra := []types.GapSkill{}
	if candidate == nil {
		return extra
	}
	for _, m := range candidate.Skills {
		if target != nil && target.Contains(m.Skill) {
			continue
		}
		extra = append(extra, types.GapSkill{
			Skill:    m.Skill,
			Category: m.Category,
		})
	}
	return extra
}

// relatedSkills returns the candidate's same-category skills, excluding
// the target skill itself, sorted for deterministic evidence output.
func relatedSkills(categorySkills []string, exclude string) []string {
	var related []string
	for _, s := range categorySkills {
		if s != exclude {
			related = append(related, s)
		}
	}
	sort.Strings(related)
	return related
}
