package rules

import (
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// BraceStyleID identifies the opening-brace placement rule.
const BraceStyleID = "brace-style"

func init() {
	Register(BraceStyleID, func(cfg Config) Rule {
		return &braceStyleRule{baseRule{
			id:       BraceStyleID,
			severity: cfg.severityFor(BraceStyleID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeClass, m.NodeFunction, m.NodeSwitch},
		}}
	})
}

// braceStyleRule checks that the opening brace of a class, function body or
// switch statement is the sole token on its line.
type braceStyleRule struct {
	baseRule
}

func (r *braceStyleRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	line, col := 0, 0

	switch node.Kind {
	case m.NodeClass:
		line, col = node.Class.BraceLine, node.Class.BraceColumn
	case m.NodeFunction:
		if !node.Function.HasBody {
			return nil
		}

		line, col = node.Function.BraceLine, node.Function.BraceColumn
	case m.NodeSwitch:
		line, col = node.Switch.BraceLine, node.Switch.BraceColumn
	}

	if line == 0 {
		return nil
	}

	if strings.TrimSpace(file.Line(line)) == "{" {
		return nil
	}

	return []m.Violation{
		r.violation(file, line, col, "opening brace should be the only token on its line"),
	}
}
