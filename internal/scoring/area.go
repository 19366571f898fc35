// Package scoring derives assessment results from a response: area averages,
// the overall maturity, the pulse average, the compass position, and ranked
// recommendations. Every function is pure and safe for concurrent use.
package scoring

import (
	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

// ScoreAreas computes one AreaScore per framework area and the overall score.
//
// An area's average covers its answered sub-axes only. The overall score is
// the mean over every answered sub-axis, so areas are weighted by how many of
// their sub-axes were answered. Areas with nothing answered average 0 and add
// no weight. Score entries for ids the framework does not know are ignored.
func ScoreAreas(fw *framework.Framework, resp *assessment.Response) ([]assessment.AreaScore, float64) {
	areaScores := make([]assessment.AreaScore, 0, len(fw.Areas))
	var total float64
	var answered int

	for _, area := range fw.Areas {
		subs := make([]assessment.SubAxisResult, 0, len(area.SubAxes))
		var sum float64
		var n int
		for _, sa := range area.SubAxes {
			score := resp.Scores[sa.ID]
			subs = append(subs, assessment.SubAxisResult{
				SubAxisID:    sa.ID,
				SubAxisTitle: sa.Title,
				Level:        score.Level,
				Comment:      score.Comment,
			})
			if score.Answered() {
				sum += float64(score.Level)
				n++
			}
		}

		var avg float64
		if n > 0 {
			avg = sum / float64(n)
		}
		areaScores = append(areaScores, assessment.AreaScore{
			AreaID:        area.ID,
			AreaTitle:     area.Title,
			AverageScore:  avg,
			SubAxisScores: subs,
		})

		total += avg * float64(n)
		answered += n
	}

	if answered == 0 {
		return areaScores, 0
	}
	return areaScores, total / float64(answered)
}
