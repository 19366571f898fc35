// Package framework holds the assessment rubric: areas, their sub-axes with four
// maturity levels each, and the pulse survey questions.
package framework

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

const builtinName = "tech-health"

// Default numeric bounds for pulse questions that declare none.
const (
	DefaultPulseMin = 0
	DefaultPulseMax = 10
)

// PulseKind tells whether a pulse question takes a number or free text.
type PulseKind string

const (
	PulseNumeric  PulseKind = "numeric"
	PulseFreeText PulseKind = "free-text"
)

func (k PulseKind) Valid() bool {
	return k == PulseNumeric || k == PulseFreeText
}

// Framework is the full rubric. It is loaded once and never mutated.
type Framework struct {
	Name           string          `yaml:"name" json:"name"`
	Version        int             `yaml:"version" json:"version"`
	Areas          []Area          `yaml:"areas" json:"areas"`
	PulseQuestions []PulseQuestion `yaml:"pulse_survey" json:"pulseSurvey"`
}

// Area is a group of related sub-axes.
type Area struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Emoji       string    `yaml:"emoji" json:"emoji,omitempty"`
	Description string    `yaml:"description" json:"description,omitempty"`
	SubAxes     []SubAxis `yaml:"sub_axes" json:"subAxes"`
}

// SubAxis is a single scored dimension with four ordered levels.
type SubAxis struct {
	ID     string  `yaml:"id" json:"id"`
	Title  string  `yaml:"title" json:"title"`
	Levels []Level `yaml:"levels" json:"levels"`
}

// Level is display metadata for one maturity step of a sub-axis.
type Level struct {
	Level       int    `yaml:"level" json:"level"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
}

// PulseQuestion is a sentiment item scored separately from the levels.
type PulseQuestion struct {
	ID       string    `yaml:"id" json:"id"`
	Question string    `yaml:"question" json:"question"`
	Purpose  string    `yaml:"purpose" json:"purpose,omitempty"`
	Kind     PulseKind `yaml:"kind" json:"kind"`
	Min      *float64  `yaml:"min" json:"min,omitempty"`
	Max      *float64  `yaml:"max" json:"max,omitempty"`
}

// Bounds returns the question's value range, applying the 0..10 default.
func (q PulseQuestion) Bounds() (min, max float64) {
	min, max = DefaultPulseMin, DefaultPulseMax
	if q.Min != nil {
		min = *q.Min
	}
	if q.Max != nil {
		max = *q.Max
	}
	return min, max
}

var (
	defaultOnce sync.Once
	defaultFW   *Framework
)

// Default returns the built-in tech health framework. The embedded catalogue is
// parsed and validated on first use; an invalid catalogue is a build defect and panics.
func Default() *Framework {
	defaultOnce.Do(func() {
		data, err := builtinFS.ReadFile("builtin/" + builtinName + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("framework.Default: %v", err))
		}
		fw, err := Load(data)
		if err != nil {
			panic(fmt.Sprintf("framework.Default: %v", err))
		}
		defaultFW = fw
	})
	return defaultFW
}

// Load parses a YAML catalogue, fills defaults, and validates it.
func Load(data []byte) (*Framework, error) {
	var fw Framework
	if err := yaml.Unmarshal(data, &fw); err != nil {
		return nil, fmt.Errorf("framework.Load: parse: %w", err)
	}
	for i := range fw.PulseQuestions {
		if fw.PulseQuestions[i].Kind == "" {
			fw.PulseQuestions[i].Kind = PulseNumeric
		}
	}
	if violations := Validate(&fw); len(violations) > 0 {
		msgs := make([]string, 0, len(violations))
		for _, v := range violations {
			msgs = append(msgs, v.Error())
		}
		return nil, fmt.Errorf("framework.Load: invalid catalogue: %s", strings.Join(msgs, "; "))
	}
	return &fw, nil
}

// Area returns the area with the given id.
func (f *Framework) Area(id string) (*Area, bool) {
	for i := range f.Areas {
		if f.Areas[i].ID == id {
			return &f.Areas[i], true
		}
	}
	return nil, false
}

// SubAxis returns the sub-axis with the given id and the area that owns it.
func (f *Framework) SubAxis(id string) (*SubAxis, *Area, bool) {
	for i := range f.Areas {
		for j := range f.Areas[i].SubAxes {
			if f.Areas[i].SubAxes[j].ID == id {
				return &f.Areas[i].SubAxes[j], &f.Areas[i], true
			}
		}
	}
	return nil, nil, false
}

// PulseQuestion returns the pulse question with the given id.
func (f *Framework) PulseQuestion(id string) (*PulseQuestion, bool) {
	for i := range f.PulseQuestions {
		if f.PulseQuestions[i].ID == id {
			return &f.PulseQuestions[i], true
		}
	}
	return nil, false
}

// SubAxisCount returns the number of sub-axes across all areas.
func (f *Framework) SubAxisCount() int {
	n := 0
	for _, a := range f.Areas {
		n += len(a.SubAxes)
	}
	return n
}

// LevelInfo returns the display metadata for a level of a sub-axis.
func (s *SubAxis) LevelInfo(level int) (Level, bool) {
	for _, l := range s.Levels {
		if l.Level == level {
			return l, true
		}
	}
	return Level{}, false
}
