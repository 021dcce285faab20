package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

func skillSet(matches ...types.SkillMatch) *types.ExtractedSkillSet {
	return &types.ExtractedSkillSet{Skills: matches}
}

func match(skill, category string) types.SkillMatch {
	return types.SkillMatch{Skill: skill, Category: category}
}

func gapNames(skills []types.GapSkill) []string {
	names := make([]string, len(skills))
	for i, gs := range skills {
		names[i] = gs.Skill
	}
	return names
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		candidate *types.ExtractedSkillSet
		target    *types.ExtractedSkillSet
		policy    Policy
		matched   []string
		missing   []string
		partial   []string
	}{
		{
			name:      "Identical sets are all matched",
			candidate: skillSet(match("pytorch", "deep_learning"), match("sql", "data_engineering")),
			target:    skillSet(match("pytorch", "deep_learning"), match("sql", "data_engineering")),
			matched:   []string{"pytorch", "sql"},
			missing:   []string{},
			partial:   []string{},
		},
		{
			name:      "Empty target yields empty result",
			candidate: skillSet(match("pytorch", "deep_learning")),
			target:    skillSet(),
			matched:   []string{},
			missing:   []string{},
			partial:   []string{},
		},
		{
			name:      "Nil candidate makes everything missing",
			candidate: nil,
			target:    skillSet(match("pytorch", "deep_learning")),
			matched:   []string{},
			missing:   []string{"pytorch"},
			partial:   []string{},
		},
		{
			name:      "Same category coverage is partial",
			candidate: skillSet(match("pytorch", "deep_learning")),
			target:    skillSet(match("tensorflow", "deep_learning")),
			matched:   []string{},
			missing:   []string{},
			partial:   []string{"tensorflow"},
		},
		{
			name:      "Exact match beats partial",
			candidate: skillSet(match("pytorch", "deep_learning"), match("tensorflow", "deep_learning")),
			target:    skillSet(match("tensorflow", "deep_learning")),
			matched:   []string{"tensorflow"},
			missing:   []string{},
			partial:   []string{},
		},
		{
			name:      "Unrelated category is missing",
			candidate: skillSet(match("pytorch", "deep_learning")),
			target:    skillSet(match("spark", "data_engineering")),
			matched:   []string{},
			missing:   []string{"spark"},
			partial:   []string{},
		},
		{
			name: "Stricter policy demands more category evidence",
			candidate: skillSet(
				match("pytorch", "deep_learning"),
			),
			target:  skillSet(match("tensorflow", "deep_learning")),
			policy:  Policy{MinCategorySkills: 2},
			matched: []string{},
			missing: []string{"tensorflow"},
			partial: []string{},
		},
		{
			name: "Stricter policy satisfied by two category skills",
			candidate: skillSet(
				match("pytorch", "deep_learning"),
				match("cnn", "deep_learning"),
			),
			target:  skillSet(match("tensorflow", "deep_learning")),
			policy:  Policy{MinCategorySkills: 2},
			matched: []string{},
			missing: []string{},
			partial: []string{"tensorflow"},
		},
		{
			name:      "Target order preserved within buckets",
			candidate: skillSet(match("python", "programming")),
			target: skillSet(
				match("spark", "data_engineering"),
				match("python", "programming"),
				match("kafka", "data_engineering"),
				match("go", "programming"),
			),
			matched: []string{"python"},
			missing: []string{"spark", "kafka"},
			partial: []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.candidate, tt.target, tt.policy)
			require.NotNil(t, result)
			assert.Equal(t, tt.matched, gapNames(result.Matched), "matched")
			assert.Equal(t, tt.missing, gapNames(result.Missing), "missing")
			assert.Equal(t, tt.partial, gapNames(result.Partial), "partial")
		})
	}
}

func TestAnalyzePartition(t *testing.T) {
	candidate := skillSet(
		match("pytorch", "deep_learning"),
		match("python", "programming"),
		match("sql", "data_engineering"),
	)
	target := skillSet(
		match("pytorch", "deep_learning"),
		match("tensorflow", "deep_learning"),
		match("aws", "cloud"),
		match("go", "programming"),
		match("statistics", "math_stats"),
	)

	result := Analyze(candidate, target, DefaultPolicy)

	// The three buckets partition the target set exactly.
	assert.Equal(t, target.Len(), result.TargetSize())

	seen := make(map[string]int)
	for _, bucket := range [][]types.GapSkill{result.Matched, result.Missing, result.Partial} {
		for _, gs := range bucket {
			seen[gs.Skill]++
		}
	}
	for _, want := range target.Skills {
		assert.Equal(t, 1, seen[want.Skill], "skill %q must appear in exactly one bucket", want.Skill)
	}
}

func TestAnalyzePartialEvidence(t *testing.T) {
	candidate := skillSet(
		match("tensorflow", "deep_learning"),
		match("cnn", "deep_learning"),
	)
	target := skillSet(match("pytorch", "deep_learning"))

	result := Analyze(candidate, target, DefaultPolicy)

	require.Len(t, result.Partial, 1)
	assert.Equal(t, []string{"cnn", "tensorflow"}, result.Partial[0].Evidence, "evidence is sorted")
}

func TestAnalyzeCarriesImportance(t *testing.T) {
	target := skillSet(types.SkillMatch{
		Skill:      "pytorch",
		Category:   "deep_learning",
		Importance: types.ImportanceRequired,
	})

	result := Analyze(nil, target, DefaultPolicy)

	require.Len(t, result.Missing, 1)
	assert.Equal(t, types.ImportanceRequired, result.Missing[0].Importance)
}

func TestExtra(t *testing.T) {
	tests := []struct {
		name      string
		candidate *types.ExtractedSkillSet
		target    *types.ExtractedSkillSet
		expected  []string
	}{
		{
			name: "Skills beyond the target",
			candidate: skillSet(
				match("pytorch", "deep_learning"),
				match("go", "programming"),
				match("sql", "data_engineering"),
			),
			target:   skillSet(match("pytorch", "deep_learning")),
			expected: []string{"go", "sql"},
		},
		{
			name:      "Identical sets leave nothing extra",
			candidate: skillSet(match("pytorch", "deep_learning")),
			target:    skillSet(match("pytorch", "deep_learning")),
			expected:  []string{},
		},
		{
			name:      "Nil candidate",
			candidate: nil,
			target:    skillSet(match("pytorch", "deep_learning")),
			expected:  []string{},
		},
		{
			name:      "Nil target keeps everything",
			candidate: skillSet(match("pytorch", "deep_learning")),
			target:    nil,
			expected:  []string{"pytorch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gapNames(Extra(tt.candidate, tt.target)))
		})
	}
}

func TestExtraDisjointFromMatched(t *testing.T) {
	candidate := skillSet(
		match("pytorch", "deep_learning"),
		match("sql", "data_engineering"),
	)
	target := skillSet(match("pytorch", "deep_learning"))

	result := Analyze(candidate, target, DefaultPolicy)
	extra := Extra(candidate, target)

	for _, gs := range extra {
		for _, m := range result.Matched {
			assert.NotEqual(t, m.Skill, gs.Skill, "extra skills must not be matched target skills")
		}
	}
	assert.Equal(t, []string{"sql"}, gapNames(extra))
}

func TestAnalyzeZeroPolicyUsesDefault(t *testing.T) {
	candidate := skillSet(match("pytorch", "deep_learning"))
	target := skillSet(match("tensorflow", "deep_learning"))

	result := Analyze(candidate, target, Policy{})

	assert.Len(t, result.Partial, 1, "zero policy should fall back to the default threshold")
}
