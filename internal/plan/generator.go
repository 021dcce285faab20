// Package plan turns a gap analysis into a prioritized, time-boxed study
// schedule. Ordering is deterministic: identical inputs always produce
// the identical plan.
package plan

import (
	"fmt"
	"sort"

	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/taxonomy"
	"github.com/jonathan/interview-prep/internal/types"
)

// Options configures plan generation. Zero values fall back to defaults.
type Options struct {
	Weeks             int // plan length, default 4
	MinutesPerWeek    int // study budget per week, default 360
	MinutesPerSkill   int // fixed per-skill allocation; 0 divides the budget evenly
	QuestionsPerSkill int // practice questions attached per item, default 2
}

const (
	defaultWeeks             = 4
	defaultMinutesPerWeek    = 360
	defaultQuestionsPerSkill = 2
	minAllocationMinutes     = 30
)

// Generate builds a study plan from a gap result. Missing skills come
// first, then partial ones; within each group items are ordered by JD
// importance, then taxonomy weight, then the analyzer's insertion order.
// The plan length equals the number of missing plus partial skills.
// The taxonomy and question bank are optional; without them priority
// falls back to insertion order and no questions are attached.
func Generate(gapResult *types.GapResult, tax *taxonomy.Taxonomy, bank *questions.Bank, opts Options) (*types.StudyPlan, error) {
	if gapResult == nil {
		return nil, fmt.Errorf("gap result is required")
	}
	if opts.Weeks < 0 {
		return nil, fmt.Errorf("weeks must be non-negative, got %d", opts.Weeks)
	}
	if opts.MinutesPerWeek < 0 {
		return nil, fmt.Errorf("minutes per week must be non-negative, got %d", opts.MinutesPerWeek)
	}
	if opts.MinutesPerSkill < 0 {
		return nil, fmt.Errorf("minutes per skill must be non-negative, got %d", opts.MinutesPerSkill)
	}

	weeks := opts.Weeks
	if weeks == 0 {
		weeks = defaultWeeks
	}
	minutesPerWeek := opts.MinutesPerWeek
	if minutesPerWeek == 0 {
		minutesPerWeek = defaultMinutesPerWeek
	}
	questionsPerSkill := opts.QuestionsPerSkill
	if questionsPerSkill == 0 {
		questionsPerSkill = defaultQuestionsPerSkill
	}

	items := make([]types.StudyPlanItem, 0, len(gapResult.Missing)+len(gapResult.Partial))
	items = appendItems(items, gapResult.Missing, types.GapMissing, tax)
	items = appendItems(items, gapResult.Partial, types.GapPartial, tax)

	allocateTime(items, weeks, minutesPerWeek, opts.MinutesPerSkill)

	total := 0
	for i := range items {
		items[i].Priority = i + 1
		total += items[i].Minutes
		if bank != nil {
			for _, q := range bank.ForSkill(items[i].Skill, items[i].Category, questionsPerSkill) {
				items[i].Questions = append(items[i].Questions, q.ID)
			}
		}
	}

	return &types.StudyPlan{
		Weeks:             weeks,
		MinutesPerWeek:    minutesPerWeek,
		Items:             items,
		Phases:            buildPhases(weeks),
		TotalStudyMinutes: total,
	}, nil
}

// appendItems converts one gap bucket into study items, ordered by JD
// importance, then taxonomy weight, then original position. The sort is
// stable so ties keep the analyzer's deterministic ordering.
func appendItems(items []types.StudyPlanItem, skills []types.GapSkill, status types.GapStatus, tax *taxonomy.Taxonomy) []types.StudyPlanItem {
	start := len(items)
	for _, gs := range skills {
		items = append(items, types.StudyPlanItem{
			Skill:    gs.Skill,
			Category: gs.Category,
			Status:   status,
		})
	}

	bucket := items[start:]
	weight := func(item types.StudyPlanItem) float64 {
		if tax == nil {
			return 0
		}
		return tax.Weight(item.Skill)
	}
	rank := make(map[string]int, len(skills))
	for _, gs := range skills {
		rank[gs.Skill] = importanceRank(gs.Importance)
	}

	sort.SliceStable(bucket, func(i, j int) bool {
		if ri, rj := rank[bucket[i].Skill], rank[bucket[j].Skill]; ri != rj {
			return ri > rj
		}
		return weight(bucket[i]) > weight(bucket[j])
	})

	return items
}

func importanceRank(imp types.Importance) int {
	switch imp {
	case types.ImportanceRequired:
		return 2
	case types.ImportancePreferred:
		return 1
	default:
		return 0
	}
}

// allocateTime assigns minutes and a week number to each item. Items
// fill weeks sequentially against the weekly budget; overflow lands in
// the final week rather than extending the plan.
func allocateTime(items []types.StudyPlanItem, weeks, minutesPerWeek, minutesPerSkill int) {
	if len(items) == 0 {
		return
	}

	perSkill := minutesPerSkill
	if perSkill == 0 {
		perSkill = (weeks * minutesPerWeek) / len(items)
		if perSkill < minAllocationMinutes {
			perSkill = minAllocationMinutes
		}
	}

	week := 1
	used := 0
	for i := range items {
		if used > 0 && used+perSkill > minutesPerWeek && week < weeks {
			week++
			used = 0
		}
		items[i].Minutes = perSkill
		items[i].Week = week
		used += perSkill
	}
}
