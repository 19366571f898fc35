package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/framework"
)

func newFrameworkCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "framework",
		Short: "Print the assessment framework: areas, sub-axes, levels and pulse questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runFramework(a, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "Output format: md or json")
	return cmd
}

func runFramework(a *app, format string) error {
	switch strings.ToLower(format) {
	case "md":
		fmt.Fprint(a.out, framework.Format(a.fw))
	case "json":
		data, err := json.MarshalIndent(a.fw, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal framework: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
	default:
		return exitError(1, "unknown format: %s", format)
	}
	return nil
}
