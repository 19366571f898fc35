package framework

import "fmt"

// Violation describes a single catalogue invariant failure.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks the catalogue invariants: non-empty ids and titles, ids unique
// across the whole framework, and exactly the levels 1..4 on every sub-axis.
func Validate(f *Framework) []Violation {
	var vs []Violation
	seen := make(map[string]string)

	claim := func(path, id string) {
		if id == "" {
			vs = append(vs, Violation{path + ".id", "required"})
			return
		}
		if prev, ok := seen[id]; ok {
			vs = append(vs, Violation{path + ".id", fmt.Sprintf("duplicate ID %q (first used at %s)", id, prev)})
			return
		}
		seen[id] = path
	}

	if len(f.Areas) == 0 {
		vs = append(vs, Violation{"areas", "at least one area required"})
	}

	for i, a := range f.Areas {
		prefix := fmt.Sprintf("areas[%d]", i)
		claim(prefix, a.ID)
		if a.Title == "" {
			vs = append(vs, Violation{prefix + ".title", "required"})
		}
		if len(a.SubAxes) == 0 {
			vs = append(vs, Violation{prefix + ".sub_axes", "at least one sub-axis required"})
		}
		for j, s := range a.SubAxes {
			sp := fmt.Sprintf("%s.sub_axes[%d]", prefix, j)
			claim(sp, s.ID)
			if s.Title == "" {
				vs = append(vs, Violation{sp + ".title", "required"})
			}
			vs = append(vs, validateLevels(sp, s.Levels)...)
		}
	}

	for i, q := range f.PulseQuestions {
		prefix := fmt.Sprintf("pulse_survey[%d]", i)
		claim(prefix, q.ID)
		if q.Question == "" {
			vs = append(vs, Violation{prefix + ".question", "required"})
		}
		if !q.Kind.Valid() {
			vs = append(vs, Violation{prefix + ".kind", fmt.Sprintf("invalid: %q", q.Kind)})
		}
		if q.Kind == PulseNumeric {
			min, max := q.Bounds()
			if min >= max {
				vs = append(vs, Violation{prefix + ".max", fmt.Sprintf("max %g must exceed min %g", max, min)})
			}
		}
	}

	return vs
}

func validateLevels(prefix string, levels []Level) []Violation {
	var vs []Violation
	if len(levels) != 4 {
		vs = append(vs, Violation{prefix + ".levels", fmt.Sprintf("expected exactly 4 levels, got %d", len(levels))})
	}
	got := make(map[int]bool)
	for k, l := range levels {
		if l.Level < 1 || l.Level > 4 {
			vs = append(vs, Violation{fmt.Sprintf("%s.levels[%d].level", prefix, k), fmt.Sprintf("must be 1..4, got %d", l.Level)})
			continue
		}
		if got[l.Level] {
			vs = append(vs, Violation{fmt.Sprintf("%s.levels[%d].level", prefix, k), fmt.Sprintf("duplicate level %d", l.Level)})
		}
		got[l.Level] = true
	}
	return vs
}
