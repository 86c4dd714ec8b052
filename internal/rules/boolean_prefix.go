package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// BooleanPrefixID identifies the boolean variable prefix rule.
const BooleanPrefixID = "boolean-prefix"

func init() {
	Register(BooleanPrefixID, func(cfg Config) Rule {
		return &booleanPrefixRule{baseRule{
			id:       BooleanPrefixID,
			severity: cfg.severityFor(BooleanPrefixID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeVariable},
		}}
	})
}

// booleanPrefixRule checks that bool variables are named bLikeThis.
type booleanPrefixRule struct {
	baseRule
}

func (r *booleanPrefixRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	decl := node.Variable
	if !decl.IsBool || decl.Name == "" {
		return nil
	}

	if isBooleanPrefixed(decl.Name) {
		return nil
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column, "boolean %s should carry the b prefix (b%s)", decl.Name, upperFirst(decl.Name)),
	}
}

func isBooleanPrefixed(name string) bool {
	return len(name) >= 2 && name[0] == 'b' && name[1] >= 'A' && name[1] <= 'Z'
}

func upperFirst(name string) string {
	if name == "" {
		return name
	}

	first := name[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}

	return string(first) + name[1:]
}
