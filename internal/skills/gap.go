// Package skills compares a candidate's skills with what a career goal
// requires and proposes skills to add.
package skills

import (
	"math"

	"github.com/jonathan/internship-wizard/internal/selection"
)

// GapResult partitions a goal's required skills by whether the candidate has them.
type GapResult struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	// MatchPercentage is round(100 * matching / required), and 0 when
	// nothing is required.
	MatchPercentage int `json:"match_percentage"`
}

// Analyze diffs owned against required. Both partitions keep the order of
// required; a skill required twice is counted once. Matching is exact.
func Analyze(owned *selection.Set[string], required []string) GapResult {
	res := GapResult{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
	}

	unique := selection.New(required...).Values()
	for _, skill := range unique {
		if owned.Contains(skill) {
			res.MatchingSkills = append(res.MatchingSkills, skill)
		} else {
			res.MissingSkills = append(res.MissingSkills, skill)
		}
	}

	if len(unique) == 0 {
		return res
	}
	res.MatchPercentage = int(math.Round(100 * float64(len(res.MatchingSkills)) / float64(len(unique))))
	return res
}

// Missing returns the required skills not in owned, in required order.
// It is the list sent when the user adds every missing skill at once.
func Missing(owned *selection.Set[string], required []string) []string {
	return Analyze(owned, required).MissingSkills
}
