package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/document"
	"github.com/dshills/techhealth/internal/redact"
	"github.com/dshills/techhealth/internal/scoring"
)

type exportFlags struct {
	draft     bool
	out       string
	redact    bool
	hasRedact bool
}

func newExportCmd(g *globalFlags) *cobra.Command {
	f := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <assessment-file>",
		Short: "Rewrite an assessment as a completed or draft export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasRedact = cmd.Flags().Changed("redact")
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runExport(a, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.draft, "draft", false, "Write an in-progress draft without results")
	flags.StringVar(&f.out, "out", "", "Output file or directory (default: generated name in the current directory)")
	flags.BoolVar(&f.redact, "redact", false, "Redact secrets and e-mail addresses in free text")

	return cmd
}

func runExport(a *app, path string, f *exportFlags) error {
	doc, err := loadDocument(a, path)
	if err != nil {
		return err
	}
	resp := doc.Export.Assessment
	if redactEnabled(a, f.redact, f.hasRedact) {
		resp = redact.Response(resp)
	}

	now := a.now()
	var exp *document.Export
	if f.draft {
		exp = document.NewDraft(resp, now)
	} else {
		exp = document.NewCompleted(resp, scoring.Calculate(a.fw, &resp, now), now)
	}

	data, err := document.Marshal(exp)
	if err != nil {
		return err
	}

	name := document.FileName(resp.TeamInfo.TeamName, now, f.draft)
	target := name
	if f.out != "" {
		target = f.out
		if info, err := os.Stat(f.out); err == nil && info.IsDir() {
			target = filepath.Join(f.out, name)
		}
	}

	a.log.Debugf("Writing export to %s", target)
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintln(a.out, target)
	return nil
}
