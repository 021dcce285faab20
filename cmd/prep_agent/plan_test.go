package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

func TestLoadGapResultFromFile(t *testing.T) {
	defer func() { planGapFile = "" }()

	data, err := loadData(dataFlags{})
	require.NoError(t, err)

	gapResult := types.GapResult{
		Matched: []types.GapSkill{},
		Missing: []types.GapSkill{{Skill: "spark", Category: "data_engineering"}},
		Partial: []types.GapSkill{},
	}

	t.Run("Bare gap result", func(t *testing.T) {
		planGapFile = writeJSON(t, gapResult)
		loaded, err := loadGapResult(data)
		require.NoError(t, err)
		assert.Equal(t, []types.GapSkill{{Skill: "spark", Category: "data_engineering"}}, loaded.Missing)
	})

	t.Run("Wrapped analyze output", func(t *testing.T) {
		planGapFile = writeJSON(t, analysisOutput{Gap: &gapResult})
		loaded, err := loadGapResult(data)
		require.NoError(t, err)
		assert.Len(t, loaded.Missing, 1)
	})

	t.Run("Missing file", func(t *testing.T) {
		planGapFile = "/nonexistent/gap.json"
		_, err := loadGapResult(data)
		assert.Error(t, err)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gap.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
		planGapFile = path
		_, err := loadGapResult(data)
		assert.Error(t, err)
	})
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "gap.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
