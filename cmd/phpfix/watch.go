package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"phpfix/internal/driver"
	"phpfix/internal/trace"
	"phpfix/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [path...]",
	Short: "Fix PHP files whenever they change",
	Long: `Watch fixes every matching file once, then re-runs the rules on files as
they are written until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "wait this long after the last change before fixing")
	watchCmd.Flags().Bool("skip-initial", false, "do not fix all files on start")
	watchCmd.Flags().Bool("dry-run", false, "only report files that would change")
	watchCmd.Flags().Bool("diff", false, "print a unified diff of every change")
	watchCmd.Flags().String("rules", "", "comma separated rules to run instead of the configured set")
	watchCmd.Flags().Int("jobs", 0, "parallel workers (0 = [runner].jobs or GOMAXPROCS)")
	watchCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	watchCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	watchCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	watchCmd.Flags().BoolP("verbose", "v", false, "also list clean files and info diagnostics")
}

func runWatch(cmd *cobra.Command, args []string) (err error) {
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
	// TUI перерисовывает экран целиком, в режиме наблюдения только мешает
	ff.ui = uiModeOff
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	skipInitial, err := cmd.Flags().GetBool("skip-initial")
	if err != nil {
		return err
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
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
	runner, err := newFixRunner(cfg, ff, out)
	if err != nil {
		return err
	}
	finder, err := driver.NewFinder(cfg.Finder, cfg.Root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	roots := args
	if len(roots) == 0 {
		roots = cfg.SearchPaths()
	}
	stdout := cmd.OutOrStdout()

	fixBatch := func(files []string) {
		ctx, span := trace.Start(ctx, trace.ScopeDriver, "watch-batch")
		defer span.End(fmt.Sprintf("%d files", len(files)))
		report, err := runner.run(ctx, files)
		if err != nil && report == nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if saveErr := runner.cache.Save(); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save cache: %v\n", saveErr)
		}
		if printErr := runner.print(stdout, report); printErr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", printErr)
		}
	}

	if !skipInitial {
		files, err := finder.List(roots)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			fixBatch(files)
		}
	}

	w, err := watch.New(debounce, finder, fixBatch)
	if err != nil {
		return err
	}
	w.OnError(func(err error) {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	})
	if err := w.Watch(roots); err != nil {
		_ = w.Close()
		return err
	}
	if !out.quiet {
		fmt.Fprintf(stdout, "watching %d paths, press Ctrl+C to stop\n", len(roots))
	}

	<-ctx.Done()
	return w.Close()
}
