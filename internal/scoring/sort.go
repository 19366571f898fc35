package scoring

import (
	"sort"

	"github.com/dshills/techhealth/internal/assessment"
)

// SortRecommendations orders recommendations by priority (high > medium > low),
// keeping emission order among equal priorities.
func SortRecommendations(recs []assessment.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
}
