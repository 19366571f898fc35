package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/techhealth/internal/config"
	"github.com/dshills/techhealth/internal/framework"
	"github.com/dshills/techhealth/internal/logger"
)

var version = "0.1.0"

type globalFlags struct {
	configPath    string
	frameworkPath string
	storeDir      string
	verbose       bool
}

// app carries what every command needs once flags and config are resolved.
type app struct {
	cfg config.Config
	log *logrus.Logger
	fw  *framework.Framework
	out io.Writer
	now func() time.Time
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "techhealth",
		Short:         "Score team tech-health self-assessments and recommend improvements",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	pf.StringVar(&g.frameworkPath, "framework", "", "Custom framework catalogue (YAML)")
	pf.StringVar(&g.storeDir, "store", "", "Directory for drafts and history")
	pf.BoolVar(&g.verbose, "verbose", false, "Print processing steps to stderr")

	root.AddCommand(
		newScoreCmd(g),
		newExportCmd(g),
		newValidateCmd(g),
		newFrameworkCmd(g),
		newHistoryCmd(g),
		newBatchCmd(g),
	)
	return root
}

// newApp resolves configuration (flags over environment over file over
// defaults), the logger and the framework catalogue.
func newApp(g *globalFlags, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Load(g.configPath, os.Getenv)
	if err != nil {
		return nil, exitError(3, "failed to load config: %v", err)
	}
	if g.storeDir != "" {
		cfg.Store.Dir = g.storeDir
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, exitError(1, "%v", err)
	}

	log := logger.New(cfg.Log.Level, errOut)

	fw := framework.Default()
	if g.frameworkPath != "" {
		log.Debugf("Loading framework: %s", g.frameworkPath)
		data, err := os.ReadFile(g.frameworkPath)
		if err != nil {
			return nil, exitError(3, "failed to read framework: %v", err)
		}
		if fw, err = framework.Load(data); err != nil {
			return nil, exitError(3, "failed to load framework: %v", err)
		}
	}

	return &app{cfg: cfg, log: log, fw: fw, out: out, now: time.Now}, nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
