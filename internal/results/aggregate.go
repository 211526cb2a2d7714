// Package results derives summary statistics from the recommendations
// returned by the matching service.
package results

import (
	"math"

	"github.com/jonathan/internship-wizard/internal/selection"
	"github.com/jonathan/internship-wizard/internal/types"
)

// Summary describes a recommendation list. When Empty is true the numeric
// fields are zero and must not be shown as an average.
type Summary struct {
	Empty bool `json:"empty"`
	Count int  `json:"count"`
	// AverageMatch is the mean match score as a rounded percentage.
	AverageMatch    int `json:"average_match"`
	DistinctSectors int `json:"distinct_sectors"`
}

// Summarize computes count, average match and distinct sector count.
// Records with an empty sector fall back to their organization as category.
func Summarize(records []types.RecommendationRecord) Summary {
	if len(records) == 0 {
		return Summary{Empty: true}
	}

	var total float64
	categories := selection.New[string]()
	for _, r := range records {
		total += r.MatchScore
		categories.Add(category(r))
	}

	return Summary{
		Count:           len(records),
		AverageMatch:    int(math.Round(100 * total / float64(len(records)))),
		DistinctSectors: categories.Len(),
	}
}

func category(r types.RecommendationRecord) string {
	if r.Sector != "" {
		return r.Sector
	}
	return r.Organization
}

// Tier buckets a match percentage for display.
type Tier string

const (
	TierStrong Tier = "strong" // 80 and above
	TierFair   Tier = "fair"   // 60 to 79
	TierWeak   Tier = "weak"
)

// Percent returns a record's match score as a rounded percentage.
func Percent(r types.RecommendationRecord) int {
	return int(math.Round(100 * r.MatchScore))
}

// TierOf classifies a match percentage.
func TierOf(percent int) Tier {
	switch {
	case percent >= 80:
		return TierStrong
	case percent >= 60:
		return TierFair
	default:
		return TierWeak
	}
}

// Ranked pairs a record with its 1-based position in the service's order.
type Ranked struct {
	Rank    int                        `json:"rank"`
	Percent int                        `json:"percent"`
	Tier    Tier                       `json:"tier"`
	Record  types.RecommendationRecord `json:"record"`
}

// Rank annotates records in the order given. It never re-sorts: the
// service's ordering is authoritative.
func Rank(records []types.RecommendationRecord) []Ranked {
	out := make([]Ranked, len(records))
	for i, r := range records {
		p := Percent(r)
		out[i] = Ranked{Rank: i + 1, Percent: p, Tier: TierOf(p), Record: r}
	}
	return out
}
