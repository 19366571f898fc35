package scoring

import (
	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

// AggregatePulse returns the mean of the numeric pulse answers, or 0 when none
// were given. Free-text questions, text answers and unknown ids are skipped.
func AggregatePulse(fw *framework.Framework, resp *assessment.Response) float64 {
	var sum float64
	var n int
	for _, q := range fw.PulseQuestions {
		if q.Kind != framework.PulseNumeric {
			continue
		}
		ans := resp.PulseScores[q.ID]
		if ans.Kind != assessment.AnswerNumeric {
			continue
		}
		sum += ans.Number
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
