package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/techhealth/internal/assessment"
)

// lowAreaThreshold is the area average below which an area-level
// recommendation is added on top of the sub-axis one.
const lowAreaThreshold = 2.5

// Recommend derives ranked recommendations from area scores.
//
// For each area it flags the single lowest answered sub-axis at level 1 or 2,
// ties going to the earlier sub-axis, and separately flags the whole area when
// its answered average is below 2.5. The combined list is stably sorted by
// priority and capped at MaxRecommendations. An empty result means nothing
// needs attention.
func Recommend(areaScores []assessment.AreaScore) []assessment.Recommendation {
	recs := []assessment.Recommendation{}

	for _, area := range areaScores {
		if lowest, ok := lowestFlagged(area.SubAxisScores); ok {
			recs = append(recs, assessment.Recommendation{
				Priority:  priorityForLevel(lowest.Level),
				AreaID:    area.AreaID,
				AreaTitle: area.AreaTitle,
				SubAxisID: lowest.SubAxisID,
				Issue:     fmt.Sprintf("%s is at Level %d", lowest.SubAxisTitle, lowest.Level),
				Action:    actionFor(area.AreaID, lowest.SubAxisID),
				Impact:    impactFor(area.AreaID),
			})
		}

		if area.AverageScore > 0 && area.AverageScore < lowAreaThreshold {
			recs = append(recs, assessment.Recommendation{
				Priority:  assessment.PriorityHigh,
				AreaID:    area.AreaID,
				AreaTitle: area.AreaTitle,
				Issue:     fmt.Sprintf("Overall %s score is %.1f", area.AreaTitle, roundHalfUp(area.AverageScore, 1)),
				Action:    fmt.Sprintf("Invest in %s as a strategic priority this quarter", area.AreaTitle),
				Impact:    impactFor(area.AreaID),
			})
		}
	}

	SortRecommendations(recs)
	return Truncate(recs, MaxRecommendations)
}

// roundHalfUp rounds v to the given decimals with halves going up: 2.25 is 2.3.
func roundHalfUp(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// lowestFlagged returns the lowest answered sub-axis at level 1 or 2.
func lowestFlagged(subs []assessment.SubAxisResult) (assessment.SubAxisResult, bool) {
	var flagged []assessment.SubAxisResult
	for _, s := range subs {
		if s.Level > 0 && s.Level < 3 {
			flagged = append(flagged, s)
		}
	}
	if len(flagged) == 0 {
		return assessment.SubAxisResult{}, false
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Level < flagged[j].Level
	})
	return flagged[0], true
}

// priorityForLevel maps a flagged level to its priority. Level 3 and above are
// never flagged, so low only exists to complete the table.
func priorityForLevel(level int) assessment.Priority {
	switch level {
	case 1:
		return assessment.PriorityHigh
	case 2:
		return assessment.PriorityMedium
	default:
		return assessment.PriorityLow
	}
}
