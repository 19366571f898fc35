// Package assessment defines the response a team fills in and the results
// derived from it. Field names follow the JSON interchange document.
package assessment

import "time"

// Response is a filled-in (possibly partial) assessment.
type Response struct {
	TeamInfo    TeamInfo                `json:"teamInfo"`
	Scores      map[string]SubAxisScore `json:"scores" validate:"dive"`
	PulseScores map[string]PulseAnswer  `json:"pulseScores"`
}

// TeamInfo identifies the assessed team.
type TeamInfo struct {
	TeamName     string      `json:"teamName" validate:"required"`
	Date         string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Participants []string    `json:"participants"`
	Notes        string      `json:"notes,omitempty"`
	Criticality  Criticality `json:"criticality,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

// SubAxisScore is the answer for one sub-axis. Level 0 means unanswered.
type SubAxisScore struct {
	Level   int    `json:"level" validate:"min=0,max=4"`
	Comment string `json:"comment,omitempty"`
}

// Answered reports whether the sub-axis carries a level.
func (s SubAxisScore) Answered() bool {
	return s.Level > 0
}

// Results is everything derived from a Response by the scoring engine.
type Results struct {
	Overall         float64          `json:"overall"`
	MaturityLevel   MaturityLevel    `json:"maturityLevel"`
	AreaScores      []AreaScore      `json:"areaScores"`
	PulseAverage    float64          `json:"pulseAverage"`
	Compass         Compass          `json:"compass"`
	Recommendations []Recommendation `json:"recommendations"`
	CompletedAt     time.Time        `json:"completedAt"`
}

// AreaScore is the per-area aggregate. AverageScore covers answered sub-axes only.
type AreaScore struct {
	AreaID        string          `json:"areaId"`
	AreaTitle     string          `json:"areaTitle"`
	AverageScore  float64         `json:"averageScore"`
	SubAxisScores []SubAxisResult `json:"subAxisScores"`
}

// Answered returns the number of answered sub-axes in the area.
func (a AreaScore) Answered() int {
	n := 0
	for _, s := range a.SubAxisScores {
		if s.Level > 0 {
			n++
		}
	}
	return n
}

// SubAxisResult is the level recorded for one sub-axis, 0 when unanswered.
type SubAxisResult struct {
	SubAxisID    string `json:"subAxisId"`
	SubAxisTitle string `json:"subAxisTitle"`
	Level        int    `json:"level"`
	Comment      string `json:"comment,omitempty"`
}

// Compass is the two-axis speed vs. sustainability position, each 0..100.
type Compass struct {
	Speed          int            `json:"speed"`
	Sustainability int            `json:"sustainability"`
	Interpretation Interpretation `json:"interpretation"`
}

// Recommendation is one ranked improvement item.
type Recommendation struct {
	Priority  Priority `json:"priority"`
	AreaID    string   `json:"areaId"`
	AreaTitle string   `json:"areaTitle"`
	SubAxisID string   `json:"subAxisId,omitempty"`
	Issue     string   `json:"issue"`
	Action    string   `json:"action"`
	Impact    string   `json:"impact"`
}
