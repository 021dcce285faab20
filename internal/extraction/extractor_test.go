package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/taxonomy"
	"github.com/jonathan/interview-prep/internal/types"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	return NewMatcher(tax)
}

func TestExtract(t *testing.T) {
	matcher := newTestMatcher(t)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Two fundamentals in order",
			text:     "I studied regularization and the bias-variance tradeoff in depth.",
			expected: []string{"regularization", "bias-variance tradeoff"},
		},
		{
			name:     "Hyphen dropped in mention",
			text:     "I studied regularization and bias variance tradeoff",
			expected: []string{"regularization", "bias-variance tradeoff"},
		},
		{
			name:     "Punctuation variants normalize",
			text:     "Built CI/CD workflows and A/B testing infrastructure.",
			expected: []string{"ci/cd", "a/b testing"},
		},
		{
			name:     "Plus sign survives",
			text:     "Wrote high-performance C++ and Python services.",
			expected: []string{"c++", "python"},
		},
		{
			name:     "Synonym resolves to canonical",
			text:     "Five years of Golang experience deploying to k8s.",
			expected: []string{"go", "kubernetes"},
		},
		{
			name:     "Unrecognized text",
			text:     "I enjoy long walks and cooking.",
			expected: []string{},
		},
		{
			name:     "Empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "Duplicate mentions collapse",
			text:     "PyTorch projects, more PyTorch, always pytorch.",
			expected: []string{"pytorch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Extract(tt.text)
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, result.Names())
		})
	}
}

func TestExtractLongestMatchWins(t *testing.T) {
	matcher := newTestMatcher(t)

	tests := []struct {
		name        string
		text        string
		expected    []string
		notExpected []string
	}{
		{
			name:        "Vision transformer over transformer",
			text:        "Trained a vision transformer on ImageNet.",
			expected:    []string{"vision transformer"},
			notExpected: []string{"transformer"},
		},
		{
			name:        "Recurrent neural network over neural network",
			text:        "Compared recurrent neural network variants.",
			expected:    []string{"rnn"},
			notExpected: []string{"neural networks"},
		},
		{
			name:        "ML system design over distributed systems fragment",
			text:        "Led machine learning system design reviews.",
			expected:    []string{"ml system design"},
			notExpected: []string{},
		},
		{
			name:        "Both match on separate spans",
			text:        "Used transformer models and a vision transformer.",
			expected:    []string{"transformer", "vision transformer"},
			notExpected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Extract(tt.text)
			for _, want := range tt.expected {
				assert.True(t, result.Contains(want), "expected %q in %v", want, result.Names())
			}
			for _, unwanted := range tt.notExpected {
				assert.False(t, result.Contains(unwanted), "did not expect %q in %v", unwanted, result.Names())
			}
		})
	}
}

func TestExtractConfidence(t *testing.T) {
	matcher := newTestMatcher(t)

	t.Run("Canonical name is exact", func(t *testing.T) {
		result := matcher.Extract("Deployed with Kubernetes.")
		match, ok := result.Lookup("kubernetes")
		require.True(t, ok)
		assert.Equal(t, types.ConfidenceExact, match.Confidence)
	})

	t.Run("Synonym only is synonym", func(t *testing.T) {
		result := matcher.Extract("Deployed with k8s.")
		match, ok := result.Lookup("kubernetes")
		require.True(t, ok)
		assert.Equal(t, types.ConfidenceSynonym, match.Confidence)
		assert.Equal(t, "k8s", match.Matched)
	})

	t.Run("Synonym upgrades when canonical also appears", func(t *testing.T) {
		result := matcher.Extract("Managed k8s clusters; Kubernetes operators too.")
		match, ok := result.Lookup("kubernetes")
		require.True(t, ok)
		assert.Equal(t, types.ConfidenceExact, match.Confidence)
		assert.Equal(t, 8, match.Offset, "offset should be the first occurrence")
	})
}

func TestExtractCategories(t *testing.T) {
	matcher := newTestMatcher(t)
	result := matcher.Extract("PyTorch and Spark on AWS.")

	expected := map[string]string{
		"pytorch": "deep_learning",
		"spark":   "data_engineering",
		"aws":     "cloud",
	}
	require.Equal(t, len(expected), result.Len())
	for skill, category := range expected {
		match, ok := result.Lookup(skill)
		require.True(t, ok, "missing %q", skill)
		assert.Equal(t, category, match.Category)
	}
}

func TestExtractOrderIsFirstOccurrence(t *testing.T) {
	matcher := newTestMatcher(t)
	result := matcher.Extract("SQL first, then Python, then sql again, then Spark.")
	assert.Equal(t, []string{"sql", "python", "spark"}, result.Names())
}

func TestExtractJD(t *testing.T) {
	matcher := newTestMatcher(t)

	jd := "Required: experience with PyTorch and distributed training.\n" +
		"Nice to have: familiarity with Kubernetes.\n" +
		"We use Docker across all teams."

	result := matcher.ExtractJD(jd)

	tests := []struct {
		skill      string
		importance types.Importance
	}{
		{"pytorch", types.ImportanceRequired},
		{"distributed training", types.ImportanceRequired},
		{"kubernetes", types.ImportancePreferred},
		{"docker", types.ImportanceMentioned},
	}

	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			match, ok := result.Lookup(tt.skill)
			require.True(t, ok)
			assert.Equal(t, tt.importance, match.Importance)
		})
	}
}

func TestExtractDoesNotMutateAcrossCalls(t *testing.T) {
	matcher := newTestMatcher(t)

	first := matcher.Extract("PyTorch and SQL.")
	second := matcher.Extract("Only Spark here.")

	assert.Equal(t, []string{"pytorch", "sql"}, first.Names())
	assert.Equal(t, []string{"spark"}, second.Names())
}
