package scoring

import "github.com/dshills/techhealth/internal/assessment"

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 10

// Truncate keeps the first max recommendations. A non-positive max uses MaxRecommendations.
func Truncate(recs []assessment.Recommendation, max int) []assessment.Recommendation {
	if max <= 0 {
		max = MaxRecommendations
	}
	if len(recs) > max {
		return recs[:max]
	}
	return recs
}
