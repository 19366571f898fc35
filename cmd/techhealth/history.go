package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/store"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded assessments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runHistory(a, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func runHistory(a *app, asJSON bool) error {
	s, err := store.New(a.cfg.Store.Dir)
	if err != nil {
		return exitError(1, "%v", err)
	}
	entries := s.History()

	if asJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No assessments recorded in %s\n", s.Dir())
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tTEAM\tDATE\tOVERALL\tMATURITY\tID")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			e.RecordedAt.Format("2006-01-02 15:04"), e.TeamName, e.Date, e.Overall, e.MaturityLevel, e.ID)
	}
	return w.Flush()
}
