package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/config"
	"github.com/dshills/techhealth/internal/document"
	"github.com/dshills/techhealth/internal/redact"
	"github.com/dshills/techhealth/internal/render"
	"github.com/dshills/techhealth/internal/schema"
	"github.com/dshills/techhealth/internal/scoring"
	"github.com/dshills/techhealth/internal/store"
)

type scoreFlags struct {
	format     string
	out        string
	exportPath string
	save       bool
	failOn     string
	redact     bool
	hasRedact  bool
}

func newScoreCmd(g *globalFlags) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score [assessment-file]",
		Short: "Score an assessment and print results",
		Long: "Score an exported assessment or a bare response. Without a file the saved\n" +
			"draft is scored.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasRedact = cmd.Flags().Changed("redact")
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runScore(a, path, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "", "Output format: json or md (default from config)")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.exportPath, "export", "", "Also write a completed export envelope to this file or directory")
	flags.BoolVar(&f.save, "save", false, "Record the result in history, or save it as the draft if incomplete")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit 2 if maturity is at or below: unstable, emerging, defined, optimized")
	flags.BoolVar(&f.redact, "redact", false, "Redact secrets and e-mail addresses in free text")

	return cmd
}

func runScore(a *app, path string, f *scoreFlags) error {
	var threshold assessment.MaturityLevel
	if f.failOn != "" {
		threshold = assessment.MaturityLevel(strings.ToLower(f.failOn))
		if !threshold.Valid() {
			return exitError(1, "unknown --fail-on maturity %q", f.failOn)
		}
	}
	format, err := outputFormat(a, f.format)
	if err != nil {
		return err
	}

	// 1. Load
	var resp assessment.Response
	if path == "" {
		resp, err = loadDraft(a)
	} else {
		var doc *document.File
		doc, err = loadDocument(a, path)
		if doc != nil {
			resp = doc.Export.Assessment
		}
	}
	if err != nil {
		return err
	}

	// 2. Redact
	if redactEnabled(a, f.redact, f.hasRedact) {
		a.log.Debug("Redacting free text")
		resp = redact.Response(resp)
	}

	// 3. Score
	now := a.now()
	results := scoring.Calculate(a.fw, &resp, now)
	a.log.WithFields(logrus.Fields{
		"overall":  fmt.Sprintf("%.2f", results.Overall),
		"maturity": results.MaturityLevel,
		"recs":     len(results.Recommendations),
	}).Debug("Scored assessment")

	// 4. Output
	var output string
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case config.FormatMarkdown:
		output = render.Markdown(&resp, &results, a.fw)
	}
	if err := writeOutput(a, f.out, output); err != nil {
		return err
	}

	// 5. Export envelope
	if f.exportPath != "" {
		target := f.exportPath
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, document.FileName(resp.TeamInfo.TeamName, now, false))
		}
		data, err := document.Marshal(document.NewCompleted(resp, results, now))
		if err != nil {
			return err
		}
		a.log.Debugf("Writing export to %s", target)
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	// 6. Persist
	if f.save {
		if err := saveResult(a, &resp, &results); err != nil {
			return err
		}
	}

	// 7. Exit code based on --fail-on
	if threshold != "" && maturityMeetsThreshold(results.MaturityLevel, threshold) {
		return exitError(2, "maturity %s meets fail threshold %s", results.MaturityLevel, threshold)
	}
	return nil
}

// loadDocument reads an export or bare response and validates it. Shape and
// value violations exit 5; unreadable files exit 3. Unknown ids only warn.
func loadDocument(a *app, path string) (*document.File, error) {
	a.log.Debugf("Loading assessment: %s", path)
	doc, err := document.LoadResponse(path)
	if err != nil {
		var shapeErr *document.ShapeError
		if errors.As(err, &shapeErr) {
			return nil, validationFailure(path, shapeErr.Errors)
		}
		return nil, exitError(3, "failed to load assessment: %v", err)
	}
	a.log.WithField("hash", doc.Hash).Debugf("Loaded %s (bare=%t, draft=%t)", path, doc.Bare, doc.Export.IsDraft())

	if errs := schema.ValidateResponse(a.fw, &doc.Export.Assessment); len(errs) > 0 {
		return nil, validationFailure(path, errs)
	}
	for _, id := range schema.UnknownIDs(a.fw, &doc.Export.Assessment) {
		a.log.WithField("file", path).Warnf("ignoring unknown id %s", id)
	}
	return doc, nil
}

func loadDraft(a *app) (assessment.Response, error) {
	s, err := store.New(a.cfg.Store.Dir)
	if err != nil {
		return assessment.Response{}, exitError(3, "%v", err)
	}
	a.log.Debugf("Loading draft from %s", s.Dir())
	draft, err := s.LoadDraft()
	if err != nil {
		return assessment.Response{}, exitError(3, "failed to load draft: %v", err)
	}
	if draft == nil {
		return assessment.Response{}, exitError(3, "no assessment file given and no saved draft in %s", s.Dir())
	}
	if errs := schema.ValidateResponse(a.fw, draft); len(errs) > 0 {
		return assessment.Response{}, validationFailure("draft", errs)
	}
	return *draft, nil
}

// saveResult records a complete assessment in history and clears the draft,
// or saves an incomplete one as the draft.
func saveResult(a *app, resp *assessment.Response, results *assessment.Results) error {
	s, err := store.New(a.cfg.Store.Dir)
	if err != nil {
		return exitError(1, "%v", err)
	}
	if !scoring.IsComplete(a.fw, resp) {
		c := scoring.Completion(a.fw, resp)
		a.log.Infof("Assessment %d%% complete; saved as draft in %s", c.Percent, s.Dir())
		return s.SaveDraft(resp)
	}
	entry, err := s.AppendHistory(resp, results, a.now())
	if err != nil {
		return err
	}
	a.log.WithField("id", entry.ID).Infof("Recorded in history (%s)", s.Dir())
	return s.ClearDraft()
}

func validationFailure(path string, errs []schema.ValidationError) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed validation:", path)
	for _, e := range errs {
		fmt.Fprintf(&b, "\n  %s", e)
	}
	return exitError(5, "%s", b.String())
}

func outputFormat(a *app, flag string) (string, error) {
	format := a.cfg.Output.Format
	if flag != "" {
		format = strings.ToLower(flag)
	}
	switch format {
	case config.FormatJSON, config.FormatMarkdown:
		return format, nil
	}
	return "", exitError(1, "unknown format: %s", format)
}

func redactEnabled(a *app, flag, changed bool) bool {
	if changed {
		return flag
	}
	return a.cfg.Output.Redact
}

func writeOutput(a *app, path, output string) error {
	if path == "" {
		_, err := fmt.Fprint(a.out, output)
		return err
	}
	a.log.Debugf("Writing output to %s", path)
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// maturityMeetsThreshold reports whether level is at or below threshold.
func maturityMeetsThreshold(level, threshold assessment.MaturityLevel) bool {
	return level.Order() <= threshold.Order()
}
