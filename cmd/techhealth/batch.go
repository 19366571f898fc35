package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/config"
	"github.com/dshills/techhealth/internal/scoring"
)

type batchFlags struct {
	concurrency int
	format      string
}

// batchRow is one line of the batch summary. Err is set when the file could
// not be scored.
type batchRow struct {
	File           string                    `json:"file"`
	TeamName       string                    `json:"teamName,omitempty"`
	Overall        float64                   `json:"overall"`
	MaturityLevel  assessment.MaturityLevel  `json:"maturityLevel,omitempty"`
	Interpretation assessment.Interpretation `json:"interpretation,omitempty"`
	Completion     int                       `json:"completion"`
	Err            string                    `json:"error,omitempty"`

	code int
}

func newBatchCmd(g *globalFlags) *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <assessment-file>...",
		Short: "Score many assessments and print a summary ranked by overall score",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), a, args, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.concurrency, "concurrency", 4, "Maximum files scored at once")
	flags.StringVar(&f.format, "format", "", "Output format: json or md (default from config)")

	return cmd
}

// runBatch scores every file. A file that fails to load or validate is
// reported in its row and does not stop the others; the command then exits
// with the first failing file's code.
func runBatch(ctx context.Context, a *app, paths []string, f *batchFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := outputFormat(a, f.format)
	if err != nil {
		return err
	}
	if f.concurrency < 1 {
		return exitError(1, "--concurrency must be at least 1")
	}

	rows := make([]batchRow, len(paths))
	now := a.now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rows[i] = scoreFile(a, path, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// rank by overall, failures last, stable on input order
	sort.SliceStable(rows, func(i, j int) bool {
		if (rows[i].Err == "") != (rows[j].Err == "") {
			return rows[i].Err == ""
		}
		return rows[i].Overall > rows[j].Overall
	})

	if err := printBatch(a, rows, format); err != nil {
		return err
	}

	for _, r := range rows {
		if r.Err != "" {
			return exitError(r.code, "%d of %d files failed", countFailed(rows), len(rows))
		}
	}
	return nil
}

func scoreFile(a *app, path string, now time.Time) batchRow {
	row := batchRow{File: path}
	doc, err := loadDocument(a, path)
	if err != nil {
		row.Err = err.Error()
		row.code = 1
		var ee *exitErr
		if errors.As(err, &ee) {
			row.code = ee.code
		}
		a.log.WithField("file", path).Error(err)
		return row
	}

	resp := &doc.Export.Assessment
	results := scoring.Calculate(a.fw, resp, now)
	row.TeamName = resp.TeamInfo.TeamName
	row.Overall = results.Overall
	row.MaturityLevel = results.MaturityLevel
	row.Interpretation = results.Compass.Interpretation
	row.Completion = scoring.Completion(a.fw, resp).Percent
	return row
}

func printBatch(a *app, rows []batchRow, format string) error {
	if format == config.FormatJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tOVERALL\tMATURITY\tCOMPASS\tDONE\tFILE")
	for _, r := range rows {
		if r.Err != "" {
			fmt.Fprintf(w, "-\t-\terror\t-\t-\t%s\n", r.File)
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%d%%\t%s\n",
			r.TeamName, r.Overall, r.MaturityLevel, r.Interpretation, r.Completion, r.File)
	}
	return w.Flush()
}

func countFailed(rows []batchRow) int {
	n := 0
	for _, r := range rows {
		if r.Err != "" {
			n++
		}
	}
	return n
}
