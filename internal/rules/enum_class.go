package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// EnumClassID identifies the scoped enum rule.
const EnumClassID = "enum-class"

func init() {
	Register(EnumClassID, func(cfg Config) Rule {
		return &enumClassRule{baseRule{
			id:       EnumClassID,
			severity: cfg.severityFor(EnumClassID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeEnum},
		}}
	})
}

// enumClassRule checks that enums are declared as scoped "enum class"
// rather than old-style unscoped enums.
type enumClassRule struct {
	baseRule
}

func (r *enumClassRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	decl := node.Enum
	if decl.IsEnumClass {
		return nil
	}

	name := decl.Name
	if name == "" {
		name = "anonymous enum"
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column, "%s should be declared as enum class", name),
	}
}
