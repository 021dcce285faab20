package types

// GapSkill is one target-role skill classified by the gap analyzer.
type GapSkill struct {
	Skill      string     `json:"skill"`
	Category   string     `json:"category"`
	Importance Importance `json:"importance,omitempty"`
	// Evidence lists candidate skills from the same category that
	// justified a partial classification. Empty for matched/missing.
	Evidence []string `json:"evidence,omitempty"`
}

// GapResult partitions the target role's required skills into three
// disjoint sets. matched ∪ missing ∪ partial always equals the target
// skill set.
type GapResult struct {
	Matched []GapSkill `json:"matched"`
	Missing []GapSkill `json:"missing"`
	Partial []GapSkill `json:"partial"`
}

// TargetSize returns the number of target skills across all three sets.
func (g *GapResult) TargetSize() int {
	return len(g.Matched) + len(g.Missing) + len(g.Partial)
}

// IsEmpty reports whether the result contains no skills at all.
func (g *GapResult) IsEmpty() bool {
	return g.TargetSize() == 0
}
