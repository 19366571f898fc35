package scoring

import (
	"time"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

// Calculate derives the full Results for a response. Given the same framework
// and response it always returns the same values apart from CompletedAt,
// which is set to now in UTC. The response is not modified.
func Calculate(fw *framework.Framework, resp *assessment.Response, now time.Time) assessment.Results {
	areaScores, overall := ScoreAreas(fw, resp)

	return assessment.Results{
		Overall:         overall,
		MaturityLevel:   Classify(overall),
		AreaScores:      areaScores,
		PulseAverage:    AggregatePulse(fw, resp),
		Compass:         ComputeCompass(areaScores),
		Recommendations: Recommend(areaScores),
		CompletedAt:     now.UTC(),
	}
}
