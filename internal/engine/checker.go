// Package engine runs the per-file check pipeline and the parallel runner
// that fans it out over a set of discovered source files.
package engine

import (
	"context"
	"errors"
	"sort"

	"conform.dev/pkg/conform/internal/adapter"
	"conform.dev/pkg/conform/internal/lexer"
	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/parser"
	"conform.dev/pkg/conform/internal/rules"
)

// Diagnostic rule IDs for failures that are recorded in the report rather
// than aborting the run.
const (
	IOErrorID    = "io-error"
	ParseErrorID = "parse-error"
)

// Checker runs the full pipeline for one file: read, tokenize, parse and
// dispatch every active rule over the resulting tree.
type Checker interface {
	CheckFile(ctx context.Context, path m.Path) (m.FileReport, error)
}

type checker struct {
	fsAdapter adapter.SourceFSAdapter
	ruleSet   *rules.RuleSet
}

// NewChecker constructs a Checker backed by the provided filesystem
// adapter and rule set.
func NewChecker(fsAdapter adapter.SourceFSAdapter, ruleSet *rules.RuleSet) Checker {
	return &checker{
		fsAdapter: fsAdapter,
		ruleSet:   ruleSet,
	}
}

// CheckFile checks one file and returns its report. Unreadable and
// unlexable files produce a report carrying a single diagnostic violation
// instead of an error; the returned error is non-nil only when the context
// is cancelled.
func (c *checker) CheckFile(ctx context.Context, path m.Path) (m.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return m.FileReport{}, err
	}

	src, err := c.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		return m.FileReport{
			File:        path,
			ParseFailed: true,
			Violations: []m.Violation{{
				File:     path,
				Line:     1,
				Column:   1,
				RuleID:   IOErrorID,
				Severity: m.SeverityError,
				Message:  err.Error(),
			}},
		}, nil
	}

	file, err := lexer.Scan(path, src)
	if err != nil {
		return c.reportScanError(path, err), nil
	}

	root := parser.Parse(file)

	var violations []m.Violation

	root.Walk(func(node *m.Node) {
		violations = append(violations, c.ruleSet.Check(node, file)...)
	})

	sortViolations(violations)

	return m.FileReport{File: path, Violations: violations}, nil
}

func (c *checker) reportScanError(path m.Path, err error) m.FileReport {
	line, column := 1, 1

	var scanErr *lexer.ScanError
	if errors.As(err, &scanErr) {
		line, column = scanErr.Line, scanErr.Column
	}

	return m.FileReport{
		File:        path,
		ParseFailed: true,
		Violations: []m.Violation{{
			File:     path,
			Line:     line,
			Column:   column,
			RuleID:   ParseErrorID,
			Severity: m.SeverityError,
			Message:  err.Error(),
		}},
	}
}

// sortViolations orders violations by line, then column, then rule ID so
// reports are deterministic regardless of tree walk order.
func sortViolations(violations []m.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}

		if violations[i].Column != violations[j].Column {
			return violations[i].Column < violations[j].Column
		}

		return violations[i].RuleID < violations[j].RuleID
	})
}
