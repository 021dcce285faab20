package types

// GapStatus records which gap bucket a study item came from.
type GapStatus string

const (
	// GapMissing marks a skill absent from the candidate's set.
	GapMissing GapStatus = "missing"
	// GapPartial marks a skill covered only by related category skills.
	GapPartial GapStatus = "partial"
)

// StudyPlanItem is a single skill to study, with a priority rank and
// a time allocation placed into a specific week of the plan.
type StudyPlanItem struct {
	Skill     string    `json:"skill"`
	Category  string    `json:"category"`
	Status    GapStatus `json:"status"`
	Priority  int       `json:"priority"` // 1 = highest
	Week      int       `json:"week"`     // 1-based
	Minutes   int       `json:"minutes"`  // allocated study time
	Questions []string  `json:"questions,omitempty"`
}

// StudyPhase is a contiguous block of weeks with a shared focus,
// e.g. gap filling or system design practice.
type StudyPhase struct {
	Name       string         `json:"name"`
	StartWeek  int            `json:"start_week"`
	EndWeek    int            `json:"end_week"`
	Focus      []string       `json:"focus"`
	DailySplit map[string]int `json:"daily_split"` // task type -> minutes per day
}

// StudyPlan is an ordered, time-boxed schedule derived from a GapResult.
// Items are sorted by priority; ordering is deterministic for identical
// inputs.
type StudyPlan struct {
	Weeks             int             `json:"weeks"`
	MinutesPerWeek    int             `json:"minutes_per_week"`
	Items             []StudyPlanItem `json:"items"`
	Phases            []StudyPhase    `json:"phases,omitempty"`
	TotalStudyMinutes int             `json:"total_study_minutes"`
}
