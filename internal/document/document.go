// Package document reads and writes the JSON export envelope that carries an
// assessment between tools: a completed export with results, or a draft.
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/schema"
)

// Export statuses.
const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Export is the interchange envelope.
type Export struct {
	Assessment assessment.Response `json:"assessment"`
	Results    *assessment.Results `json:"results,omitempty"`
	Status     string              `json:"status,omitempty"`
	ExportedAt time.Time           `json:"exportedAt"`
}

// NewCompleted wraps a response and its results as a completed export.
func NewCompleted(resp assessment.Response, results assessment.Results, now time.Time) *Export {
	return &Export{
		Assessment: resp,
		Results:    &results,
		ExportedAt: now.UTC(),
	}
}

// NewDraft wraps a partial response as an in-progress export without results.
func NewDraft(resp assessment.Response, now time.Time) *Export {
	return &Export{
		Assessment: resp,
		Status:     StatusInProgress,
		ExportedAt: now.UTC(),
	}
}

// IsDraft reports whether an imported document should be resumed rather
// than shown as finished: it is marked in-progress, has no results, or has
// no scores at all.
func (e *Export) IsDraft() bool {
	return e.Status == StatusInProgress ||
		e.Results == nil ||
		len(e.Assessment.Scores) == 0
}

// UnmarshalJSON accepts exportedAt as RFC 3339 or a bare YYYY-MM-DD date.
func (e *Export) UnmarshalJSON(data []byte) error {
	type plain Export
	var aux struct {
		plain
		ExportedAt string `json:"exportedAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Export(aux.plain)
	e.ExportedAt = time.Time{}
	if aux.ExportedAt == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, aux.ExportedAt); err == nil {
			e.ExportedAt = t
			return nil
		}
	}
	return fmt.Errorf("exportedAt: unrecognised timestamp %q", aux.ExportedAt)
}

// ShapeError carries every schema violation found in a document.
type ShapeError struct {
	Errors []schema.ValidationError
}

func (e *ShapeError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return "invalid document: " + strings.Join(msgs, "; ")
}

// Parse validates raw against the export schema and decodes it.
func Parse(raw []byte) (*Export, error) {
	if errs := schema.ValidateShape(raw); len(errs) > 0 {
		return nil, &ShapeError{Errors: errs}
	}
	var e Export
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("document.Parse: %w", err)
	}
	normalize(&e.Assessment)
	return &e, nil
}

// Marshal encodes an export as indented JSON with a trailing newline.
func Marshal(e *Export) ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("document.Marshal: %w", err)
	}
	return append(data, '\n'), nil
}

func normalize(r *assessment.Response) {
	if r.Scores == nil {
		r.Scores = map[string]assessment.SubAxisScore{}
	}
	if r.PulseScores == nil {
		r.PulseScores = map[string]assessment.PulseAnswer{}
	}
}

// File is a loaded document with its source metadata.
type File struct {
	Path   string
	Hash   string
	Bare   bool
	Export *Export
}

// Load reads an export envelope from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document.Load: %w", err)
	}
	e, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Hash: hash(data), Export: e}, nil
}

// LoadResponse reads either an export envelope or a bare response. A bare
// response is wrapped in an envelope with no results and Bare set.
func LoadResponse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document.LoadResponse: %w", err)
	}

	bare := !isEnvelope(data)
	raw := data
	if bare {
		raw = append(append([]byte(`{"assessment":`), bytes.TrimSpace(data)...), '}')
	}
	e, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Hash: hash(data), Bare: bare, Export: e}, nil
}

// isEnvelope reports whether data is a JSON object with an "assessment" key.
// Anything that is not an object is treated as an envelope so the schema
// check reports it against the envelope shape.
func isEnvelope(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return true
	}
	_, ok := top["assessment"]
	return ok
}

func hash(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName returns the default download name for an export, e.g.
// "tech-health-assessment-Team-Rocket-2025-10-24.json" or, for drafts,
// "tech-health-assessment-draft-Team-Rocket-2025-10-24.json".
func FileName(teamName string, now time.Time, draft bool) string {
	team := whitespace.ReplaceAllString(strings.TrimSpace(teamName), "-")
	team = strings.NewReplacer("/", "-", `\`, "-").Replace(team)
	if team == "" {
		team = "team"
	}
	prefix := "tech-health-assessment"
	if draft {
		prefix += "-draft"
	}
	return fmt.Sprintf("%s-%s-%s.json", prefix, team, now.UTC().Format("2006-01-02"))
}
