// Package schema validates imported assessment documents: their JSON shape
// against the export schema, and the decoded values against the framework.
package schema

import (
	_ "embed"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/framework"
)

//go:embed export.schema.json
var exportSchema []byte

// ValidationError describes a single violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema

	validate = newValidator()
)

func exportSchemaCompiled() *gojsonschema.Schema {
	compileOnce.Do(func() {
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(exportSchema))
		if err != nil {
			panic(fmt.Sprintf("schema: embedded export schema is invalid: %v", err))
		}
		compiled = s
	})
	return compiled
}

// ValidateShape checks a raw export document against the export schema.
// Malformed JSON is reported as a single violation at the root.
func ValidateShape(raw []byte) []ValidationError {
	result, err := exportSchemaCompiled().Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return []ValidationError{{"(root)", fmt.Sprintf("not a JSON document: %v", err)}}
	}
	if result.Valid() {
		return nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{field, desc.Description()})
	}
	return errs
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateResponse checks decoded values: struct constraints on team info
// and levels, then framework-aware pulse checks. Ids the framework does not
// know are not errors here; see UnknownIDs.
func ValidateResponse(fw *framework.Framework, resp *assessment.Response) []ValidationError {
	var errs []ValidationError

	if err := validate.Struct(resp); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []ValidationError{{"(root)", err.Error()}}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{fieldPath(fe), fieldMessage(fe)})
		}
	}

	for _, id := range sortedKeys(resp.PulseScores) {
		ans := resp.PulseScores[id]
		q, ok := fw.PulseQuestion(id)
		if !ok || !ans.Answered() {
			continue
		}
		path := "pulseScores." + id
		switch {
		case ans.Kind == assessment.AnswerText && q.Kind != framework.PulseFreeText:
			errs = append(errs, ValidationError{path, "text answer on a numeric question"})
		case ans.Kind == assessment.AnswerNumeric && q.Kind == framework.PulseFreeText:
			errs = append(errs, ValidationError{path, "numeric answer on a free-text question"})
		case ans.Kind == assessment.AnswerNumeric:
			lo, hi := q.Bounds()
			if ans.Number < lo || ans.Number > hi {
				errs = append(errs, ValidationError{path, fmt.Sprintf("value %g outside %g-%g", ans.Number, lo, hi)})
			}
		}
	}

	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
	return errs
}

// fieldPath turns "Response.scores[code-quality].level" into "scores.code-quality.level".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "datetime":
		return fmt.Sprintf("must be a %s date, got %q", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// UnknownIDs lists score and pulse ids the framework does not define,
// as "scores.<id>" and "pulseScores.<id>", sorted.
func UnknownIDs(fw *framework.Framework, resp *assessment.Response) []string {
	var out []string
	for _, id := range sortedKeys(resp.Scores) {
		if _, _, ok := fw.SubAxis(id); !ok {
			out = append(out, "scores."+id)
		}
	}
	for _, id := range sortedKeys(resp.PulseScores) {
		if _, ok := fw.PulseQuestion(id); !ok {
			out = append(out, "pulseScores."+id)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
