package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// PointerSpacingID identifies the pointer/reference spacing rule.
const PointerSpacingID = "pointer-spacing"

func init() {
	Register(PointerSpacingID, func(cfg Config) Rule {
		return &pointerSpacingRule{baseRule{
			id:       PointerSpacingID,
			severity: cfg.severityFor(PointerSpacingID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeVariable},
		}}
	})
}

// pointerSpacingRule checks that a declaration reads "Type *Name": exactly
// one space between the type and the pointer or reference token, and none
// between that token and the identifier.
type pointerSpacingRule struct {
	baseRule
}

func (r *pointerSpacingRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	decl := node.Variable
	if decl.Ptr == "" {
		// Plain declaration, or one the parser could not anchor to a
		// single line.
		return nil
	}

	// One violation per declaration: the spacing is wrong or it is not.
	before := decl.PtrColumn - decl.TypeEndColumn
	if before != 1 {
		return []m.Violation{r.violation(file, node.Line, decl.PtrColumn,
			"expected exactly one space between %s and '%s' in declaration of %s", decl.Type, decl.Ptr, decl.Name)}
	}

	after := decl.NameColumn - (decl.PtrColumn + len(decl.Ptr))
	if after != 0 {
		return []m.Violation{r.violation(file, node.Line, decl.NameColumn,
			"'%s' should be attached to %s with no space", decl.Ptr, decl.Name)}
	}

	return nil
}
