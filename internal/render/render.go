// Package render produces a Markdown report from an assessment and its results.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
	"github.com/dshills/techhealth/internal/scoring"
)

const excellentMessage = "🎉 **Excellent Tech Health!** Your team is performing well across all areas. " +
	"Keep up the great work and continue to maintain these high standards."

// lineBreak ends a line inside a paragraph with a Markdown hard break.
const lineBreak = "  \n"

var priorityLabels = map[assessment.Priority]string{
	assessment.PriorityHigh:   "High Priority",
	assessment.PriorityMedium: "Medium Priority",
	assessment.PriorityLow:    "Low Priority",
}

// Markdown renders a response and its results as a Markdown report.
func Markdown(resp *assessment.Response, r *assessment.Results, fw *framework.Framework) string {
	var b strings.Builder

	renderHeader(&b, resp)

	// Overall
	maturity := scoring.DescribeMaturity(r.MaturityLevel)
	b.WriteString("## Overall\n\n")
	fmt.Fprintf(&b, "**Score:** %.2f / 4 (%s)\n\n", r.Overall, maturity.Label)
	fmt.Fprintf(&b, "%s\n\n", maturity.Description)
	fmt.Fprintf(&b, "**Next step:** %s\n\n", maturity.Action)
	c := scoring.Completion(fw, resp)
	fmt.Fprintf(&b, "**Completion:** %d/%d sub-axes (%d%%)%s", c.Answered, c.Total, c.Percent, lineBreak)
	if r.PulseAverage > 0 {
		p := scoring.PulseCompletion(fw, resp)
		fmt.Fprintf(&b, "**Pulse average:** %.1f / 10 (%d/%d questions answered)%s", r.PulseAverage, p.Answered, p.Total, lineBreak)
	}
	b.WriteString("\n")

	renderAreas(&b, r.AreaScores, resp, fw)

	// Compass
	compass := scoring.DescribeCompass(r.Compass.Interpretation)
	b.WriteString("## Speed vs. Sustainability\n\n")
	fmt.Fprintf(&b, "**Speed:** %d / 100\n", r.Compass.Speed)
	fmt.Fprintf(&b, "**Sustainability:** %d / 100\n\n", r.Compass.Sustainability)
	fmt.Fprintf(&b, "%s **%s**: %s\n\n", compass.Emoji, compass.Label, compass.Description)
	fmt.Fprintf(&b, "**Action:** %s\n\n", compass.Action)

	renderRecommendations(&b, r.Recommendations)
	renderPulseText(&b, resp, fw)

	return b.String()
}

func renderHeader(b *strings.Builder, resp *assessment.Response) {
	ti := resp.TeamInfo
	fmt.Fprintf(b, "# Tech Health Report: %s\n\n", ti.TeamName)
	if ti.Date != "" {
		fmt.Fprintf(b, "**Date:** %s%s", ti.Date, lineBreak)
	}
	if len(ti.Participants) > 0 {
		fmt.Fprintf(b, "**Participants:** %s%s", strings.Join(ti.Participants, ", "), lineBreak)
	}
	if ti.Criticality != "" {
		fmt.Fprintf(b, "**Criticality:** %s%s", ti.Criticality, lineBreak)
	}
	b.WriteString("\n")
	if ti.Notes != "" {
		fmt.Fprintf(b, "> %s\n\n", strings.ReplaceAll(ti.Notes, "\n", "\n> "))
	}
}

func renderAreas(b *strings.Builder, areas []assessment.AreaScore, resp *assessment.Response, fw *framework.Framework) {
	b.WriteString("## Areas\n\n")
	b.WriteString("| Area | Average | Band | Answered |\n")
	b.WriteString("|------|---------|------|----------|\n")

	var comments []string
	for _, a := range areas {
		title := a.AreaTitle
		progress := scoring.Progress{Answered: a.Answered(), Total: len(a.SubAxisScores)}
		if fa, ok := fw.Area(a.AreaID); ok {
			if fa.Emoji != "" {
				title = fa.Emoji + " " + title
			}
			progress = scoring.AreaCompletion(*fa, resp)
		}
		if progress.Answered == 0 {
			fmt.Fprintf(b, "| %s | n/a | - | 0/%d |\n", title, progress.Total)
		} else {
			fmt.Fprintf(b, "| %s | %.2f | %s | %d/%d |\n",
				title, a.AverageScore, scoring.ScoreBand(a.AverageScore), progress.Answered, progress.Total)
		}
		for _, s := range a.SubAxisScores {
			if s.Comment != "" {
				comments = append(comments, fmt.Sprintf("- %s / %s (%s): %s",
					a.AreaTitle, s.SubAxisTitle, levelTag(fw, s), s.Comment))
			}
		}
	}
	b.WriteString("\n")

	if len(comments) > 0 {
		b.WriteString("### Comments\n\n")
		b.WriteString(strings.Join(comments, "\n"))
		b.WriteString("\n\n")
	}
}

// levelTag is "L<n>" followed by the level's label when the framework has one.
func levelTag(fw *framework.Framework, s assessment.SubAxisResult) string {
	tag := fmt.Sprintf("L%d", s.Level)
	if sa, _, ok := fw.SubAxis(s.SubAxisID); ok {
		if l, ok := sa.LevelInfo(s.Level); ok && l.Label != "" {
			tag += " " + l.Label
		}
	}
	return tag
}

func renderRecommendations(b *strings.Builder, recs []assessment.Recommendation) {
	b.WriteString("## Recommendations\n\n")
	if len(recs) == 0 {
		b.WriteString(excellentMessage + "\n\n")
		return
	}
	for _, p := range []assessment.Priority{assessment.PriorityHigh, assessment.PriorityMedium, assessment.PriorityLow} {
		group := filterRecommendations(recs, p)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", priorityLabels[p])
		for _, rec := range group {
			fmt.Fprintf(b, "#### %s (%s)\n\n", rec.Issue, rec.AreaTitle)
			fmt.Fprintf(b, "**Action:** %s\n\n", rec.Action)
			fmt.Fprintf(b, "**Impact:** %s\n\n", rec.Impact)
		}
	}
}

func renderPulseText(b *strings.Builder, resp *assessment.Response, fw *framework.Framework) {
	var lines []string
	for _, q := range fw.PulseQuestions {
		ans, ok := resp.PulseScores[q.ID]
		if !ok || ans.Kind != assessment.AnswerText || !ans.Answered() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s** %s", q.Question, ans.Text))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("## Pulse Check\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
}

func filterRecommendations(recs []assessment.Recommendation, p assessment.Priority) []assessment.Recommendation {
	var out []assessment.Recommendation
	for _, r := range recs {
		if r.Priority == p {
			out = append(out, r)
		}
	}
	return out
}
