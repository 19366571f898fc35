// Package redact replaces secrets and personal contact details in free-text
// answers with [REDACTED] before a response is exported or rendered.
package redact

import (
	"regexp"

	"github.com/dshills/techhealth/internal/assessment"
)

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// AWS secret access keys (40 char base64 after common prefixes)
		`(?i)(aws_secret_access_key|aws_secret)\s*[:=]\s*[A-Za-z0-9/+=]{40}`,
		// Private key blocks
		`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`,
		// Bearer tokens
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		// Generic key/secret/token/password assignments
		`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`,
		// E-mail addresses
		`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Redact replaces secret patterns in text with [REDACTED].
func Redact(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}

// Response returns a copy of resp with notes, sub-axis comments and text
// pulse answers redacted. Levels, numeric answers and identity fields are
// left alone. resp is not modified.
func Response(resp assessment.Response) assessment.Response {
	out := resp
	out.TeamInfo.Notes = Redact(resp.TeamInfo.Notes)
	if resp.TeamInfo.Participants != nil {
		out.TeamInfo.Participants = append([]string(nil), resp.TeamInfo.Participants...)
	}

	if resp.Scores != nil {
		out.Scores = make(map[string]assessment.SubAxisScore, len(resp.Scores))
		for id, s := range resp.Scores {
			s.Comment = Redact(s.Comment)
			out.Scores[id] = s
		}
	}

	if resp.PulseScores != nil {
		out.PulseScores = make(map[string]assessment.PulseAnswer, len(resp.PulseScores))
		for id, a := range resp.PulseScores {
			if a.Kind == assessment.AnswerText {
				a.Text = Redact(a.Text)
			}
			out.PulseScores[id] = a
		}
	}
	return out
}
