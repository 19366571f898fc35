package framework

import (
	"fmt"
	"strings"
)

// Format renders the catalogue as Markdown for the `framework` command.
func Format(f *Framework) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Framework: %s (v%d)\n\n", f.Name, f.Version)

	for _, a := range f.Areas {
		if a.Emoji != "" {
			fmt.Fprintf(&b, "## %s %s (%s)\n\n", a.Emoji, a.Title, a.ID)
		} else {
			fmt.Fprintf(&b, "## %s (%s)\n\n", a.Title, a.ID)
		}
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(a.Description))
		}
		for _, s := range a.SubAxes {
			fmt.Fprintf(&b, "### %s (%s)\n\n", s.Title, s.ID)
			for _, l := range s.Levels {
				fmt.Fprintf(&b, "%d. **%s**: %s\n", l.Level, l.Label, l.Description)
				if l.Example != "" {
					fmt.Fprintf(&b, "   _e.g. %s_\n", l.Example)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(f.PulseQuestions) > 0 {
		b.WriteString("## Pulse Survey\n\n")
		for _, q := range f.PulseQuestions {
			switch q.Kind {
			case PulseFreeText:
				fmt.Fprintf(&b, "- %s (%s, free text)\n", q.Question, q.ID)
			default:
				min, max := q.Bounds()
				fmt.Fprintf(&b, "- %s (%s, %g-%g)\n", q.Question, q.ID, min, max)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
