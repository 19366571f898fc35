package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/scoring"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <assessment-file>",
		Short: "Check an assessment document without scoring it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runValidate(a, args[0])
		},
	}
}

func runValidate(a *app, path string) error {
	doc, err := loadDocument(a, path)
	if err != nil {
		return err
	}

	kind := "completed"
	if doc.Export.IsDraft() {
		kind = "draft"
	}
	c := scoring.Completion(a.fw, &doc.Export.Assessment)
	fmt.Fprintf(a.out, "%s: valid %s (%d/%d sub-axes answered, %d%%) %s\n",
		path, kind, c.Answered, c.Total, c.Percent, doc.Hash)
	return nil
}
