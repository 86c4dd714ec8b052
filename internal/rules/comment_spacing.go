package rules

import (
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// CommentSpacingID identifies the comment spacing rule.
const CommentSpacingID = "comment-spacing"

func init() {
	Register(CommentSpacingID, func(cfg Config) Rule {
		return &commentSpacingRule{baseRule{
			id:       CommentSpacingID,
			severity: cfg.severityFor(CommentSpacingID, m.SeverityInfo),
			targets:  []m.NodeKind{m.NodeFile},
		}}
	})
}

// commentSpacingRule checks that line comment text is separated from the
// "//" marker by a space. Doc comments ("///"), tool directives ("//!")
// and banner lines ("//----") are exempt.
type commentSpacingRule struct {
	baseRule
}

func (r *commentSpacingRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for _, tok := range file.Tokens {
		if tok.Kind != m.TokenComment || !strings.HasPrefix(tok.Text, "//") {
			continue
		}

		rest := tok.Text[2:]
		if rest == "" {
			continue
		}

		switch rest[0] {
		case ' ', '\t', '/', '!', '-', '~', '=', '*':
			continue
		}

		violations = append(violations, r.violation(file, tok.Line, tok.Column,
			"comment text should be separated from // by a space"))
	}

	return violations
}
