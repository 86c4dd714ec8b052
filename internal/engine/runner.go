package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/pkg"
)

// ErrViolations is the sentinel returned when a run completed but the
// report contains error-severity violations. Callers map it to a distinct
// exit status.
var ErrViolations = errors.New("conformance violations found")

// DefaultSpillThreshold is the file count above which per-file reports are
// spilled to disk instead of accumulating in memory.
const DefaultSpillThreshold = 4096

// Options tunes a run.
type Options struct {
	// Parallel is the worker count. Zero or negative means GOMAXPROCS.
	Parallel int

	// FailFast cancels remaining work after the first error-severity
	// violation. Files already being checked still finish.
	FailFast bool

	// SpillThreshold overrides DefaultSpillThreshold when positive.
	SpillThreshold int
}

func (o Options) parallel() int {
	if o.Parallel > 0 {
		return o.Parallel
	}

	return runtime.GOMAXPROCS(0)
}

func (o Options) spillThreshold() int {
	if o.SpillThreshold > 0 {
		return o.SpillThreshold
	}

	return DefaultSpillThreshold
}

// Runner fans CheckFile out over a bounded worker pool and aggregates the
// per-file reports into one RunReport.
type Runner interface {
	Run(ctx context.Context, paths []m.Path) (m.RunReport, error)
}

type runner struct {
	checker Checker
	opts    Options
}

// NewRunner constructs a Runner over the given checker.
func NewRunner(checker Checker, opts Options) Runner {
	return &runner{
		checker: checker,
		opts:    opts,
	}
}

// Run checks every path and returns the aggregated report sorted by file
// path. An empty path list is an error: a conformance run over nothing is
// almost always a misconfigured invocation, not a clean result. When the
// finished report contains error-severity violations the returned error is
// ErrViolations.
func (r *runner) Run(ctx context.Context, paths []m.Path) (m.RunReport, error) {
	if len(paths) == 0 {
		return m.RunReport{}, fmt.Errorf("no source files to check")
	}

	sink, err := newReportSink(len(paths), r.opts.spillThreshold())
	if err != nil {
		return m.RunReport{}, err
	}

	defer sink.discard()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)
	group.SetLimit(r.opts.parallel())

	results := make(chan m.FileReport, r.opts.parallel())

	collectDone := make(chan error, 1)
	go func() {
		collectDone <- r.collect(results, sink, cancel)
	}()

	for _, path := range paths {
		path := path
		group.Go(func() error {
			report, err := r.checker.CheckFile(groupCtx, path)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}

				return err
			}

			select {
			case results <- report:
			case <-groupCtx.Done():
			}

			return nil
		})
	}

	groupErr := group.Wait()
	close(results)

	if err := <-collectDone; err != nil {
		return m.RunReport{}, err
	}

	if groupErr != nil {
		return m.RunReport{}, groupErr
	}

	report, err := sink.report()
	if err != nil {
		return m.RunReport{}, err
	}

	if report.HasErrors() {
		return report, ErrViolations
	}

	return report, nil
}

// collect drains the results channel into the sink. With fail-fast enabled
// it cancels the run after the first error-severity violation.
func (r *runner) collect(results <-chan m.FileReport, sink *reportSink, cancel context.CancelFunc) error {
	for report := range results {
		if err := sink.add(report); err != nil {
			return err
		}

		if r.opts.FailFast && fileHasError(report) {
			slog.Debug("fail-fast triggered", "file", report.File)
			cancel()
		}
	}

	return nil
}

func fileHasError(report m.FileReport) bool {
	for _, v := range report.Violations {
		if v.Severity == m.SeverityError {
			return true
		}
	}

	return false
}

// reportSink accumulates per-file reports, in memory for ordinary runs and
// through a disk spill for very large ones.
type reportSink struct {
	inMemory []m.FileReport
	spill    pkg.FileSpill[m.FileReport]
}

func newReportSink(fileCount, threshold int) (*reportSink, error) {
	if fileCount <= threshold {
		return &reportSink{}, nil
	}

	spill, err := pkg.NewFileSpill[m.FileReport]("conform-reports-*.gob")
	if err != nil {
		return nil, fmt.Errorf("failed to create report spill: %w", err)
	}

	return &reportSink{spill: spill}, nil
}

func (s *reportSink) add(report m.FileReport) error {
	if s.spill != nil {
		return s.spill.Append(report)
	}

	s.inMemory = append(s.inMemory, report)

	return nil
}

func (s *reportSink) report() (m.RunReport, error) {
	var report m.RunReport

	if s.spill != nil {
		report.Files = make([]m.FileReport, 0, s.spill.Len())

		err := s.spill.Range(func(_ uint64, fr m.FileReport) error {
			report.Files = append(report.Files, fr)
			return nil
		})
		if err != nil {
			return m.RunReport{}, fmt.Errorf("failed to read report spill: %w", err)
		}
	} else {
		report.Files = s.inMemory
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].File < report.Files[j].File
	})

	return report, nil
}

func (s *reportSink) discard() {
	if s.spill == nil {
		return
	}

	if err := s.spill.Close(); err == nil {
		_ = s.spill.Remove()
	}
}
