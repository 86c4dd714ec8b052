package rules

import (
	"strings"
	"unicode/utf8"

	m "conform.dev/pkg/conform/internal/model"
)

// Line-granular rule IDs. These target the file root node so they run even
// when a file only yields opaque structural nodes.
const (
	TabIndentID          = "tab-indent"
	TrailingWhitespaceID = "trailing-whitespace"
	LineLengthID         = "line-length"
)

func init() {
	Register(TabIndentID, func(cfg Config) Rule {
		return &tabIndentRule{baseRule{
			id:       TabIndentID,
			severity: cfg.severityFor(TabIndentID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeFile},
		}}
	})

	Register(TrailingWhitespaceID, func(cfg Config) Rule {
		return &trailingWhitespaceRule{baseRule{
			id:       TrailingWhitespaceID,
			severity: cfg.severityFor(TrailingWhitespaceID, m.SeverityInfo),
			targets:  []m.NodeKind{m.NodeFile},
		}}
	})

	Register(LineLengthID, func(cfg Config) Rule {
		return &lineLengthRule{
			baseRule: baseRule{
				id:       LineLengthID,
				severity: cfg.severityFor(LineLengthID, m.SeverityInfo),
				targets:  []m.NodeKind{m.NodeFile},
			},
			max: cfg.maxLineLength(),
		}
	})
}

// tabIndentRule checks that indentation uses tabs. Block comment
// continuation lines aligned with " *" are conventional and exempt.
type tabIndentRule struct {
	baseRule
}

func (r *tabIndentRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for i, line := range file.Lines {
		if !strings.HasPrefix(line, " ") {
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "*") {
			continue
		}

		violations = append(violations, r.violation(file, i+1, 1, "indentation should use tabs, not spaces"))
	}

	return violations
}

// trailingWhitespaceRule checks for spaces or tabs before the line end.
type trailingWhitespaceRule struct {
	baseRule
}

func (r *trailingWhitespaceRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for i, line := range file.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line || trimmed == "" {
			continue
		}

		violations = append(violations, r.violation(file, i+1, len(trimmed)+1, "trailing whitespace"))
	}

	return violations
}

// lineLengthRule checks the configured maximum line length.
type lineLengthRule struct {
	baseRule

	max int
}

func (r *lineLengthRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for i, line := range file.Lines {
		length := utf8.RuneCountInString(line)
		if length <= r.max {
			continue
		}

		violations = append(violations, r.violation(file, i+1, r.max+1,
			"line is %d characters long, limit is %d", length, r.max))
	}

	return violations
}
