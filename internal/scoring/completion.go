package scoring

import (
	"math"
	"strings"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

// Progress counts answered items against the framework total.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

func newProgress(answered, total int) Progress {
	p := Progress{Answered: answered, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(answered) / float64(total) * 100))
	}
	return p
}

// Completion reports how many framework sub-axes carry a level.
// Ids unknown to the framework do not count.
func Completion(fw *framework.Framework, resp *assessment.Response) Progress {
	answered := 0
	for _, area := range fw.Areas {
		for _, sa := range area.SubAxes {
			if resp.Scores[sa.ID].Answered() {
				answered++
			}
		}
	}
	return newProgress(answered, fw.SubAxisCount())
}

// AreaCompletion reports progress for a single area.
func AreaCompletion(area framework.Area, resp *assessment.Response) Progress {
	answered := 0
	for _, sa := range area.SubAxes {
		if resp.Scores[sa.ID].Answered() {
			answered++
		}
	}
	return newProgress(answered, len(area.SubAxes))
}

// PulseCompletion reports how many pulse questions were answered.
func PulseCompletion(fw *framework.Framework, resp *assessment.Response) Progress {
	answered := 0
	for _, q := range fw.PulseQuestions {
		if resp.PulseScores[q.ID].Answered() {
			answered++
		}
	}
	return newProgress(answered, len(fw.PulseQuestions))
}

// IsComplete reports whether the response names its team and answers every sub-axis.
func IsComplete(fw *framework.Framework, resp *assessment.Response) bool {
	if strings.TrimSpace(resp.TeamInfo.TeamName) == "" {
		return false
	}
	c := Completion(fw, resp)
	return c.Answered == c.Total
}
