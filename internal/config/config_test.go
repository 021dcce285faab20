package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid config", func(t *testing.T) {
		path := writeConfig(t, `{
			"weeks": 6,
			"minutes_per_week": 420,
			"min_category_skills": 2,
			"verbose": true
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.Weeks)
		assert.Equal(t, 420, cfg.MinutesPerWeek)
		assert.Equal(t, 2, cfg.MinCategorySkills)
		assert.True(t, cfg.Verbose)
	})

	t.Run("Empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.json")
		assert.Error(t, err)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := writeConfig(t, "{not json")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Zero config is valid", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Negative weeks", func(t *testing.T) {
		cfg := &Config{Weeks: -1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Negative minutes", func(t *testing.T) {
		cfg := &Config{MinutesPerWeek: -1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing taxonomy file", func(t *testing.T) {
		cfg := &Config{Taxonomy: "/nonexistent/taxonomy.json"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Existing data file", func(t *testing.T) {
		path := writeConfig(t, "{}")
		cfg := &Config{Taxonomy: path}
		assert.NoError(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	base := Config{Weeks: 6, Taxonomy: "/custom/taxonomy.json"}
	defaults := Config{
		Weeks:          4,
		MinutesPerWeek: 360,
		Taxonomy:       "/default/taxonomy.json",
		Questions:      "/default/questions.json",
	}

	merged := base.MergeWithDefaults(defaults)

	assert.Equal(t, 6, merged.Weeks, "set values win")
	assert.Equal(t, "/custom/taxonomy.json", merged.Taxonomy)
	assert.Equal(t, 360, merged.MinutesPerWeek, "unset values fall back")
	assert.Equal(t, "/default/questions.json", merged.Questions)
}
