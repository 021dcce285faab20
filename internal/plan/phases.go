package plan

import "github.com/jonathan/interview-prep/internal/types"

// phaseTemplate mirrors the study templates the platform ships: a fixed
// progression from fundamentals through mock interviews, with a daily
// minute split per task type.
type phaseTemplate struct {
	name       string
	focus      []string
	dailySplit map[string]int
}

var phaseTemplates = []phaseTemplate{
	{
		name:       "Foundations",
		focus:      []string{"ml_fundamentals", "programming", "math_stats"},
		dailySplit: map[string]int{"theory": 60, "coding": 45},
	},
	{
		name:       "Deep Learning Core",
		focus:      []string{"deep_learning", "nlp", "computer_vision"},
		dailySplit: map[string]int{"theory": 45, "coding": 45, "system_design": 30},
	},
	{
		name:       "System Design",
		focus:      []string{"system_design", "mlops", "recommendation"},
		dailySplit: map[string]int{"theory": 30, "coding": 30, "system_design": 60, "mock_interview": 30},
	},
	{
		name:       "Mock Interview Sprint",
		focus:      []string{"review", "behavioral"},
		dailySplit: map[string]int{"theory": 20, "coding": 30, "system_design": 30, "mock_interview": 60},
	},
}

// buildPhases spreads the phase progression across the plan's weeks.
// Shorter plans drop later phases; longer plans widen the earlier ones.
func buildPhases(weeks int) []types.StudyPhase {
	if weeks <= 0 {
		return nil
	}

	n := len(phaseTemplates)
	if weeks < n {
		n = weeks
	}

	base := weeks / n
	extra := weeks % n

	phases := make([]types.StudyPhase, 0, n)
	start := 1
	for i := 0; i < n; i++ {
		span := base
		if i < extra {
			span++
		}
		tmpl := phaseTemplates[i]
		phases = append(phases, types.StudyPhase{
			Name:       tmpl.name,
			StartWeek:  start,
			EndWeek:    start + span - 1,
			Focus:      tmpl.focus,
			DailySplit: tmpl.dailySplit,
		})
		start += span
	}

	return phases
}
