package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// SwitchFallthroughID identifies the case fallthrough rule.
const SwitchFallthroughID = "switch-fallthrough"

// SwitchDefaultID identifies the mandatory default case rule.
const SwitchDefaultID = "switch-default"

func init() {
	Register(SwitchFallthroughID, func(cfg Config) Rule {
		return &switchFallthroughRule{baseRule{
			id:       SwitchFallthroughID,
			severity: cfg.severityFor(SwitchFallthroughID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeSwitch},
		}}
	})

	Register(SwitchDefaultID, func(cfg Config) Rule {
		return &switchDefaultRule{baseRule{
			id:       SwitchDefaultID,
			severity: cfg.severityFor(SwitchDefaultID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeSwitch},
		}}
	})
}

// switchFallthroughRule checks that every case block with statements ends
// in break/return/continue/goto or carries a fallthrough comment. A block
// with no statements falls directly into the next label, which is the
// idiomatic way to share a body between cases and is never a violation.
type switchFallthroughRule struct {
	baseRule
}

func (r *switchFallthroughRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for _, block := range node.Switch.Cases {
		if block.StatementCount == 0 {
			continue
		}

		if block.Terminated || block.FallthroughComment {
			continue
		}

		violations = append(violations, r.violation(file, block.Line, block.Column,
			"%s has statements but no break, return or fallthrough comment", block.Label))
	}

	return violations
}

// switchDefaultRule checks that every switch carries a default case.
type switchDefaultRule struct {
	baseRule
}

func (r *switchDefaultRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	if node.Switch.HasDefault {
		return nil
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column, "switch statement should handle a default case"),
	}
}
