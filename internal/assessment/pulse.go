package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags a PulseAnswer.
type AnswerKind string

const (
	AnswerNumeric AnswerKind = "numeric"
	AnswerText    AnswerKind = "text"
)

// PulseAnswer is either a number or free text. The zero value is unanswered.
// On the wire it is a bare JSON number, a string, or null.
type PulseAnswer struct {
	Kind   AnswerKind
	Number float64
	Text   string
}

// NumericAnswer returns a numeric pulse answer.
func NumericAnswer(v float64) PulseAnswer {
	return PulseAnswer{Kind: AnswerNumeric, Number: v}
}

// TextAnswer returns a free-text pulse answer.
func TextAnswer(s string) PulseAnswer {
	return PulseAnswer{Kind: AnswerText, Text: s}
}

// Answered reports whether the answer carries a value. Blank text counts as unanswered.
func (a PulseAnswer) Answered() bool {
	switch a.Kind {
	case AnswerNumeric:
		return true
	case AnswerText:
		return strings.TrimSpace(a.Text) != ""
	}
	return false
}

func (a PulseAnswer) String() string {
	switch a.Kind {
	case AnswerNumeric:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case AnswerText:
		return a.Text
	}
	return ""
}

func (a PulseAnswer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerNumeric:
		return json.Marshal(a.Number)
	case AnswerText:
		return json.Marshal(a.Text)
	}
	return []byte("null"), nil
}

func (a *PulseAnswer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = PulseAnswer{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("pulse answer must be a number, string, or null: %s", data)
	}
	*a = NumericAnswer(v)
	return nil
}
