package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// VirtualDestructorID identifies the virtual destructor rule.
const VirtualDestructorID = "virtual-destructor"

func init() {
	Register(VirtualDestructorID, func(cfg Config) Rule {
		return &virtualDestructorRule{baseRule{
			id:       VirtualDestructorID,
			severity: cfg.severityFor(VirtualDestructorID, m.SeverityError),
			targets:  []m.NodeKind{m.NodeClass},
		}}
	})
}

// virtualDestructorRule checks that a class with virtual methods declares a
// virtual destructor. Deleting such a class through a base pointer without
// one is undefined behavior, hence the Error default.
type virtualDestructorRule struct {
	baseRule
}

func (r *virtualDestructorRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	decl := node.Class

	if !decl.HasVirtualMethod || decl.HasVirtualDestructor {
		return nil
	}

	what := "a non-virtual destructor"
	if !decl.HasDestructor {
		what = "no destructor"
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column,
			"class %s has virtual methods but %s; declare a virtual destructor", decl.Name, what),
	}
}
