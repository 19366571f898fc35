package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

func paths(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Path
	}
	return out
}

func TestValidateShapeValid(t *testing.T) {
	docs := map[string]string{
		"completed": `{
			"assessment": {
				"teamInfo": {"teamName": "Payments", "date": "2025-10-24", "participants": ["ana"]},
				"scores": {"code-quality": {"level": 3, "comment": "ok"}},
				"pulseScores": {"pulse-tools": 7, "pulse-blockers": "none", "pulse-time": null}
			},
			"results": {"overall": 3},
			"exportedAt": "2025-10-24T10:00:00Z"
		}`,
		"draft": `{
			"assessment": {"teamInfo": {"teamName": "Payments"}, "scores": null, "pulseScores": null},
			"status": "in-progress",
			"exportedAt": "2025-10-24T10:00:00Z"
		}`,
		"null level": `{
			"assessment": {"teamInfo": {"teamName": "Payments"}, "scores": {"lead-time": {"level": null, "comment": "later"}}},
			"exportedAt": "2025-10-24"
		}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, ValidateShape([]byte(doc)))
		})
	}
}

func TestValidateShapeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing assessment", `{"status": "completed"}`},
		{"empty team name", `{"assessment": {"teamInfo": {"teamName": ""}}}`},
		{"missing team info", `{"assessment": {"scores": {}}}`},
		{"scores not object", `{"assessment": {"teamInfo": {"teamName": "x"}, "scores": []}}`},
		{"bad status", `{"assessment": {"teamInfo": {"teamName": "x"}}, "status": "done"}`},
		{"bool pulse", `{"assessment": {"teamInfo": {"teamName": "x"}, "pulseScores": {"pulse-tools": true}}}`},
		{"fractional level", `{"assessment": {"teamInfo": {"teamName": "x"}, "scores": {"code-quality": {"level": 2.5}}}}`},
		{"top-level array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, ValidateShape([]byte(tt.doc)))
		})
	}
}

func TestValidateShapeMalformed(t *testing.T) {
	errs := ValidateShape([]byte(`{ not json`))
	require.Len(t, errs, 1)
	assert.Equal(t, "(root)", errs[0].Path)
}

func validResponse() *assessment.Response {
	return &assessment.Response{
		TeamInfo: assessment.TeamInfo{TeamName: "Payments", Date: "2025-10-24", Criticality: assessment.CriticalityHigh},
		Scores: map[string]assessment.SubAxisScore{
			"code-quality": {Level: 3},
			"monitoring":   {Level: 0},
		},
		PulseScores: map[string]assessment.PulseAnswer{
			"pulse-tools":    assessment.NumericAnswer(7),
			"pulse-blockers": assessment.TextAnswer("flaky CI"),
		},
	}
}

func TestValidateResponseValid(t *testing.T) {
	assert.Empty(t, ValidateResponse(framework.Default(), validResponse()))
}

func TestValidateResponseRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *assessment.Response)
		path   string
	}{
		{"missing team name", func(r *assessment.Response) { r.TeamInfo.TeamName = "" }, "teamInfo.teamName"},
		{"bad date", func(r *assessment.Response) { r.TeamInfo.Date = "24/10/2025" }, "teamInfo.date"},
		{"bad criticality", func(r *assessment.Response) { r.TeamInfo.Criticality = "severe" }, "teamInfo.criticality"},
		{"level too high", func(r *assessment.Response) {
			r.Scores["code-quality"] = assessment.SubAxisScore{Level: 5}
		}, "scores.code-quality.level"},
		{"negative level", func(r *assessment.Response) {
			r.Scores["code-quality"] = assessment.SubAxisScore{Level: -1}
		}, "scores.code-quality.level"},
		{"pulse out of range", func(r *assessment.Response) {
			r.PulseScores["pulse-tools"] = assessment.NumericAnswer(11)
		}, "pulseScores.pulse-tools"},
		{"text on numeric question", func(r *assessment.Response) {
			r.PulseScores["pulse-tools"] = assessment.TextAnswer("lots")
		}, "pulseScores.pulse-tools"},
		{"number on free-text question", func(r *assessment.Response) {
			r.PulseScores["pulse-blockers"] = assessment.NumericAnswer(3)
		}, "pulseScores.pulse-blockers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResponse()
			tt.mutate(r)
			errs := ValidateResponse(framework.Default(), r)
			assert.Contains(t, paths(errs), tt.path)
		})
	}
}

func TestValidateResponseIgnoresUnknownAndBlank(t *testing.T) {
	r := validResponse()
	r.Scores["retired-axis"] = assessment.SubAxisScore{Level: 2}
	r.PulseScores["pulse-retired"] = assessment.TextAnswer("x")
	r.PulseScores["pulse-time"] = assessment.TextAnswer("")
	assert.Empty(t, ValidateResponse(framework.Default(), r))
}

func TestValidateResponseSortedPaths(t *testing.T) {
	r := validResponse()
	r.TeamInfo.TeamName = ""
	r.Scores["code-quality"] = assessment.SubAxisScore{Level: 9}
	r.Scores["monitoring"] = assessment.SubAxisScore{Level: 7}
	r.PulseScores["pulse-tools"] = assessment.NumericAnswer(-1)

	errs := ValidateResponse(framework.Default(), r)
	assert.Equal(t, []string{
		"pulseScores.pulse-tools",
		"scores.code-quality.level",
		"scores.monitoring.level",
		"teamInfo.teamName",
	}, paths(errs))
}

func TestUnknownIDs(t *testing.T) {
	r := validResponse()
	r.Scores["zeta"] = assessment.SubAxisScore{Level: 1}
	r.Scores["alpha"] = assessment.SubAxisScore{Level: 1}
	r.PulseScores["pulse-mood"] = assessment.NumericAnswer(3)

	assert.Equal(t, []string{"scores.alpha", "scores.zeta", "pulseScores.pulse-mood"},
		UnknownIDs(framework.Default(), r))
	assert.Empty(t, UnknownIDs(framework.Default(), validResponse()))
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Path: "teamInfo.teamName", Message: "required"}
	assert.Equal(t, "teamInfo.teamName: required", e.Error())
}
