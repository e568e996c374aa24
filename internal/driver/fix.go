package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"phpfix/internal/diag"
	"phpfix/internal/fix"
	"phpfix/internal/project"
	"phpfix/internal/source"
	"phpfix/internal/tokens"
	"phpfix/internal/trace"
)

const defaultMaxDiagnostics = 64

// Request configures a fix run.
type Request struct {
	Rules     []fix.Rule
	MaxPasses int
	// DryRun computes results without touching files.
	DryRun bool
	// Diff fills FileResult.Diff for changed files.
	Diff bool
	// Jobs limits parallel workers; zero means GOMAXPROCS.
	Jobs  int
	Cache *Cache
	Sink  ProgressSink
	// FileSet receives the loaded files; a fresh one is used when nil.
	FileSet        *source.FileSet
	MaxDiagnostics int
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Status    Status
	Changed   bool
	Applied   []fix.AppliedFix
	Passes    int
	Converged bool
	Diff      []byte
	// Diagnostics for this file; positions resolve through the request FileSet.
	Diagnostics []diag.Diagnostic
	Err         error
	Elapsed     time.Duration
}

// RuleNames returns the distinct applied rules in first-use order.
func (r *FileResult) RuleNames() []string {
	res := fix.Result{Applied: r.Applied}
	return res.RuleNames()
}

// Report collects the results of FixFiles.
type Report struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Bag merges the per-file diagnostics in file order, dropping duplicates.
func (r *Report) Bag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics * max(len(r.Files), 1)
	}
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for i := range r.Files {
		for _, d := range r.Files[i].Diagnostics {
			rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return bag
}

// Count returns how many files ended with status st.
func (r *Report) Count(st Status) int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Status == st {
			n++
		}
	}
	return n
}

// HasErrors reports whether any file failed.
func (r *Report) HasErrors() bool { return r.Count(StatusError) > 0 }

// FixFile runs the rules over one file. Problems with the file itself are
// reported in the result, not as an error; the file is then left untouched.
func FixFile(ctx context.Context, path string, req Request) FileResult {
	if req.FileSet == nil {
		req.FileSet = source.NewFileSet()
	}
	return fixFile(ctx, path, req)
}

func fixFile(ctx context.Context, path string, req Request) (res FileResult) {
	started := time.Now()
	res = FileResult{Path: path}
	ctx, span := trace.StartFile(ctx, path)
	defer func() {
		res.Elapsed = time.Since(started)
		span.Fail(res.Err).WithExtra("status", string(res.Status)).WithExtra("rules", strings.Join(res.RuleNames(), ",")).End("")
		emit(req.Sink, Event{File: path, Stage: stageFor(res.Status), Status: res.Status, Err: res.Err, Elapsed: res.Elapsed})
	}()

	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	rep := diag.BagReporter{Bag: bag}
	fail := func(err error) FileResult {
		res.Status = StatusError
		res.Err = err
		res.Changed = false
		res.Diff = nil
		res.Diagnostics = bag.Items()
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	emit(req.Sink, Event{File: path, Stage: StageRead, Status: StatusWorking})
	fileID, err := req.FileSet.Load(path)
	if err != nil {
		// пустой виртуальный файл, чтобы диагностике было к чему привязаться
		fileID = req.FileSet.AddVirtual(path, nil)
		res.FileID = fileID
		diag.ReportError(rep, diag.IOReadFailed, source.WholeFile(fileID), err.Error()).Emit()
		return fail(err)
	}
	res.FileID = fileID
	file := req.FileSet.Get(fileID)
	hash := project.Digest(file.Hash)

	if req.Cache.IsClean(path, hash) {
		res.Status = StatusCached
		res.Converged = true
		return res
	}

	s, ok := loadStream(rep, file)
	if !ok {
		req.Cache.Forget(path)
		return fail(errors.New(bag.Items()[0].Message))
	}

	emit(req.Sink, Event{File: path, Stage: StageFix, Status: StatusWorking})
	result, err := fix.Run(ctx, s, req.Rules, fix.Options{MaxPasses: req.MaxPasses})
	if err != nil {
		req.Cache.Forget(path)
		var ruleErr *fix.RuleError
		if errors.As(err, &ruleErr) {
			b := diag.ReportError(rep, diag.StrRuleFailed, source.WholeFile(fileID),
				fmt.Sprintf("rule %s failed on pass %d: %v", ruleErr.Rule, ruleErr.Pass, ruleErr.Err))
			var structErr *tokens.StructuralError
			if errors.As(ruleErr.Err, &structErr) {
				// индекс относится к потоку после предыдущих правил, не к файлу на диске
				b = b.WithNote(source.WholeFile(fileID), fmt.Sprintf("at token %d of the rewritten stream", structErr.Index))
			}
			b.Emit()
		}
		return fail(err)
	}
	res.Applied = result.Applied
	res.Passes = result.Passes
	res.Converged = result.Converged
	if !result.Converged {
		diag.Report(rep, diag.FixNotConverge, source.WholeFile(fileID),
			"rules still changed the file after "+strconv.Itoa(result.Passes)+" passes").Emit()
	}

	if !result.Changed() {
		req.Cache.MarkClean(path, hash)
		res.Status = StatusClean
		res.Diagnostics = bag.Items()
		return res
	}

	fixed := s.Bytes()
	res.Changed = true
	if req.Diff {
		d, err := Diff(path, file.Content, path, fixed)
		if err != nil {
			return fail(err)
		}
		res.Diff = d
	}

	if req.DryRun {
		diag.Report(rep, diag.FixWouldChange, source.WholeFile(fileID),
			"would apply "+strings.Join(res.RuleNames(), ", ")).Emit()
		req.Cache.Forget(path)
	} else {
		emit(req.Sink, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFileAtomic(path, fixed, 0o644); err != nil {
			diag.ReportError(rep, diag.IOWriteFailed, source.WholeFile(fileID), err.Error()).Emit()
			return fail(err)
		}
		if result.Converged {
			req.Cache.MarkClean(path, project.Sum(string(fixed)))
		}
	}
	res.Status = StatusFixed
	res.Diagnostics = bag.Items()
	return res
}

func stageFor(st Status) Stage {
	if st == StatusFixed {
		return StageWrite
	}
	return StageFix
}

// FixFiles runs FixFile over files in parallel. Results keep the order of
// files. The returned error is only set when ctx is cancelled.
func FixFiles(ctx context.Context, files []string, req Request) (*Report, error) {
	if req.FileSet == nil {
		req.FileSet = source.NewFileSet()
	}
	report := &Report{FileSet: req.FileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return report, nil
	}
	if len(req.Rules) == 0 {
		return nil, fix.ErrNoRules
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "fix")
	defer span.WithExtra("files", strconv.Itoa(len(files))).End("")

	for _, path := range files {
		emit(req.Sink, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Files[i] = fixFile(gctx, path, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, ctx.Err()
}
