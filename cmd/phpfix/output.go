package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phpfix/internal/diag"
	"phpfix/internal/diagfmt"
	"phpfix/internal/observ"
	"phpfix/internal/project"
	"phpfix/internal/source"
)

type outputOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts outputOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		opts.color = true
	case "off":
		opts.color = false
	case "auto":
		opts.color = isTerminal(os.Stderr)
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	modeFlag, err := flags.GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(modeFlag)
	if !ok {
		return opts, fmt.Errorf("invalid --path-mode value %q", modeFlag)
	}
	opts.pathMode = mode
	return opts, nil
}

// printDiagnostics writes errors and warnings to stderr. Info diagnostics
// are only shown when verbose is set.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, opts outputOptions, format string, verbose bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	shown := diag.NewBag(bag.Len())
	for _, d := range bag.Items() {
		if d.Severity.Visible(verbose) {
			shown.Add(d)
		}
	}
	if shown.Len() == 0 {
		return nil
	}
	shown.Sort()

	switch format {
	case "json":
		return diagfmt.JSON(os.Stderr, shown, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			Max:              opts.maxDiagnostics,
			IncludeNotes:     true,
		})
	case "short":
		_, err := io.WriteString(os.Stderr, diag.FormatShort(shown.Items(), fs, verbose))
		return err
	default:
		diagfmt.Pretty(os.Stderr, shown, fs, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   2,
			PathMode:  opts.pathMode,
			ShowNotes: true,
		})
		return nil
	}
}

func printTimings(out io.Writer, timer *observ.Timer, opts outputOptions) {
	if !opts.timings || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

// loadConfig reads --config or searches for .phpfix.toml from the working
// directory.
func loadConfig(cmd *cobra.Command) (*project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadFile(path)
	}
	return project.Load(".")
}

// applyRuleFlag narrows the configured rules to a comma separated list.
func applyRuleFlag(cfg *project.Config, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return cfg.Select(strings.Split(value, ","))
}
