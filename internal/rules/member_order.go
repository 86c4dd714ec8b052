package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// MemberOrderID identifies the class member ordering rule.
const MemberOrderID = "member-order"

func init() {
	Register(MemberOrderID, func(cfg Config) Rule {
		return &memberOrderRule{baseRule{
			id:       MemberOrderID,
			severity: cfg.severityFor(MemberOrderID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeClass},
		}}
	})
}

// memberOrderRule checks that members within a contiguous visibility block
// follow the canonical order: constructors, destructor, overridden
// functions, other functions, then variables. A new visibility label
// restarts the expected sequence.
type memberOrderRule struct {
	baseRule
}

func (r *memberOrderRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	visibility := ""
	maxKind := m.MemberConstructor
	var lastAt m.Member

	for _, member := range node.Class.Members {
		if member.Visibility != visibility {
			visibility = member.Visibility
			maxKind = m.MemberConstructor
		}

		if member.Kind < maxKind {
			violations = append(violations, r.violation(file, member.Line, member.Column,
				"%s %s declared after %s %s; expected constructors, destructor, overrides, functions, then variables",
				member.Kind, member.Name, lastAt.Kind, lastAt.Name))

			continue
		}

		if member.Kind > maxKind {
			maxKind = member.Kind
			lastAt = member
		}
	}

	return violations
}
