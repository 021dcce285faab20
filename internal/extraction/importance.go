package extraction

import (
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
)

// Phrases that mark a skill as a hard requirement or a nice-to-have when
// they share a line with the skill mention. Checked against normalized
// lowercase text; required markers win over preferred markers.
var (
	requiredMarkers = []string{
		"required",
		"must have",
		"experience with",
		"experience in",
		"proficiency in",
		"proficient in",
		"expertise in",
		"strong knowledge",
	}
	preferredMarkers = []string{
		"preferred",
		"nice to have",
		"a plus",
		"bonus",
		"familiarity with",
		"exposure to",
	}
)

// DetectImportance classifies how strongly a job description demands a
// skill by scanning the lines where its surface form appears. A line is
// matched on normalized text, so punctuation variants line up.
func DetectImportance(text, surface string) types.Importance {
	if text == "" || surface == "" {
		return types.ImportanceMentioned
	}

	needle := " " + normalizeLine(surface) + " "
	importance := types.ImportanceMentioned

	for _, line := range strings.Split(text, "\n") {
		normalized := " " + normalizeLine(line) + " "
		if !strings.Contains(normalized, needle) {
			continue
		}
		if containsAny(normalized, requiredMarkers) {
			return types.ImportanceRequired
		}
		if containsAny(normalized, preferredMarkers) {
			importance = types.ImportancePreferred
		}
	}

	return importance
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
