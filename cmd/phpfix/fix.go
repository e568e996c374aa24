package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phpfix/internal/driver"
	"phpfix/internal/observ"
	"phpfix/internal/project"
	"phpfix/internal/source"
	"phpfix/internal/trace"
)

// exitCodeWouldChange is returned by --dry-run when some file needs fixing.
const exitCodeWouldChange = 8

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [path...]",
	Short: "Fix PHP files in place",
	Long: `Fix runs the configured rules over the given files and directories, or over
[finder].paths from .phpfix.toml when no path is given.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "only report files that would change")
	fixCmd.Flags().Bool("diff", false, "print a unified diff of every change")
	fixCmd.Flags().String("rules", "", "comma separated rules to run instead of the configured set")
	fixCmd.Flags().Int("jobs", 0, "parallel workers (0 = [runner].jobs or GOMAXPROCS)")
	fixCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	fixCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	fixCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	fixCmd.Flags().BoolP("verbose", "v", false, "also list clean files and info diagnostics")
}

type fixFlags struct {
	dryRun  bool
	diff    bool
	rules   string
	jobs    int
	noCache bool
	format  string
	ui      uiMode
	verbose bool
}

func readFixFlags(cmd *cobra.Command) (fixFlags, error) {
	var ff fixFlags
	var err error
	flags := cmd.Flags()
	if ff.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return ff, err
	}
	if ff.diff, err = flags.GetBool("diff"); err != nil {
		return ff, err
	}
	if ff.rules, err = flags.GetString("rules"); err != nil {
		return ff, err
	}
	if ff.jobs, err = flags.GetInt("jobs"); err != nil {
		return ff, err
	}
	if ff.noCache, err = flags.GetBool("no-cache"); err != nil {
		return ff, err
	}
	if ff.format, err = flags.GetString("format"); err != nil {
		return ff, err
	}
	switch ff.format {
	case "pretty", "short", "json":
	default:
		return ff, fmt.Errorf("unknown format: %s", ff.format)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode(uiFlag); err != nil {
		return ff, err
	}
	if ff.verbose, err = flags.GetBool("verbose"); err != nil {
		return ff, err
	}
	return ff, nil
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err) }()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	ff, err := readFixFlags(cmd)
	if err != nil {
		return err
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "fix")
	defer span.End("")

	var timer *observ.Timer
	if out.timings {
		timer = observ.NewTimer()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRuleFlag(cfg, ff.rules); err != nil {
		return err
	}
	if ff.jobs > 0 {
		cfg.Runner.Jobs = ff.jobs
	}

	phase := timer.Begin("discover")
	files, err := discoverFiles(cfg, args)
	timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !out.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no PHP files found")
		}
		return nil
	}

	runner, err := newFixRunner(cfg, ff, out)
	if err != nil {
		return err
	}

	phase = timer.Begin("fix")
	report, err := runner.run(ctx, files)
	timer.End(phase, "")
	if err != nil && report == nil {
		return err
	}

	phase = timer.Begin("cache")
	if saveErr := runner.cache.Save(); saveErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to save cache: %v\n", saveErr)
	}
	timer.End(phase, "")

	if printErr := runner.print(cmd.OutOrStdout(), report); printErr != nil {
		return printErr
	}
	printTimings(cmd.ErrOrStderr(), timer, out)
	if err != nil {
		return err
	}
	return runner.exitStatus(report)
}

// discoverFiles lists files under args, or under [finder].paths when args
// is empty.
func discoverFiles(cfg *project.Config, args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		roots = cfg.SearchPaths()
	}
	return driver.ListFiles(roots, cfg.Finder, cfg.Root)
}

// fixRunner holds what is shared between runs of the fix and watch commands.
type fixRunner struct {
	cfg   *project.Config
	flags fixFlags
	out   outputOptions
	req   driver.Request
	cache *driver.Cache
}

func newFixRunner(cfg *project.Config, ff fixFlags, out outputOptions) (*fixRunner, error) {
	rules, err := cfg.BuildRules()
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, errors.New("no rules enabled")
	}

	r := &fixRunner{cfg: cfg, flags: ff, out: out}
	if cfg.Runner.Cache && !ff.noCache {
		cache, err := driver.OpenCache(cfg.CachePath(), cfg.Signature())
		if err != nil {
			// битый кеш не повод падать
			fmt.Fprintf(os.Stderr, "warning: %v; starting with an empty cache\n", err)
			cache = driver.NewCache(cfg.CachePath(), cfg.Signature())
		}
		r.cache = cache
	}
	r.req = driver.Request{
		Rules:          rules,
		MaxPasses:      cfg.Runner.MaxPasses,
		DryRun:         ff.dryRun,
		Diff:           ff.diff,
		Jobs:           cfg.Runner.Jobs,
		Cache:          r.cache,
		MaxDiagnostics: out.maxDiagnostics,
	}
	return r, nil
}

func (r *fixRunner) run(ctx context.Context, files []string) (*driver.Report, error) {
	req := r.req
	req.FileSet = source.NewFileSet()
	if shouldUseTUI(r.flags.ui) {
		title := "fixing"
		if r.flags.dryRun {
			title = "checking"
		}
		return runFixWithUI(ctx, title, files, req)
	}
	return driver.FixFiles(ctx, files, req)
}

func (r *fixRunner) print(w io.Writer, report *driver.Report) error {
	verb := "fixed"
	if r.flags.dryRun {
		verb = "would fix"
	}
	for i := range report.Files {
		res := &report.Files[i]
		if res.Path == "" {
			continue
		}
		switch res.Status {
		case driver.StatusFixed:
			if !r.out.quiet {
				fmt.Fprintf(w, "%s %s (%s)\n", verb, res.Path, strings.Join(res.RuleNames(), ", "))
			}
			if len(res.Diff) > 0 {
				if _, err := w.Write(res.Diff); err != nil {
					return err
				}
			}
		case driver.StatusClean, driver.StatusCached:
			if r.flags.verbose && !r.out.quiet {
				fmt.Fprintf(w, "%s %s\n", res.Status, res.Path)
			}
		}
	}

	if err := printDiagnostics(report.Bag(r.out.maxDiagnostics), report.FileSet, r.out, r.flags.format, r.flags.verbose); err != nil {
		return err
	}

	if !r.out.quiet {
		fmt.Fprintf(w, "%d files: %d %s, %d clean, %d cached, %d failed\n",
			len(report.Files),
			report.Count(driver.StatusFixed), verb,
			report.Count(driver.StatusClean),
			report.Count(driver.StatusCached),
			report.Count(driver.StatusError))
	}
	return nil
}

func (r *fixRunner) exitStatus(report *driver.Report) error {
	if n := report.Count(driver.StatusError); n > 0 {
		return fmt.Errorf("%d files could not be fixed", n)
	}
	if r.flags.dryRun && report.Count(driver.StatusFixed) > 0 {
		return &exitError{code: exitCodeWouldChange}
	}
	return nil
}
