package rules

import (
	"regexp"
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// PascalCaseID identifies the identifier-casing rule.
const PascalCaseID = "pascal-case"

func init() {
	Register(PascalCaseID, func(cfg Config) Rule {
		return &pascalCaseRule{baseRule{
			id:       PascalCaseID,
			severity: cfg.severityFor(PascalCaseID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeClass, m.NodeFunction, m.NodeVariable, m.NodeEnum},
		}}
	})
}

var pascalCasePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// acronymRun matches three or more consecutive upper-case letters, which
// means an acronym was written fully capitalized (HTTPServer) instead of
// first-letter-only (HttpServer). Two in a row are allowed so that a word
// boundary like "MyXCoord" does not trip the rule.
var acronymRun = regexp.MustCompile(`[A-Z]{3,}`)

// pascalCaseRule checks that type, function and variable identifiers are
// PascalCase. Boolean variables are checked after stripping their b prefix;
// operator overloads and unnamed nodes are skipped.
type pascalCaseRule struct {
	baseRule
}

func (r *pascalCaseRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	name := ""

	switch node.Kind {
	case m.NodeClass:
		name = node.Class.Name
	case m.NodeEnum:
		name = node.Enum.Name
	case m.NodeFunction:
		name = node.Function.Name
	case m.NodeVariable:
		name = node.Variable.Name
		if node.Variable.IsBool && isBooleanPrefixed(name) {
			name = name[1:]
		}
	}

	if name == "" || name == "operator" {
		return nil
	}

	if !pascalCasePattern.MatchString(name) {
		return []m.Violation{
			r.violation(file, node.Line, node.Column, "%s %s should be PascalCase", node.Kind, name),
		}
	}

	if run := acronymRun.FindString(name); run != "" {
		// The final capital of a run may start the next word: "URLToPath"
		// has the run "URLT" but only "URL" is the acronym.
		acronym := run
		if !strings.HasSuffix(name, run) {
			acronym = run[:len(run)-1]
		}

		return []m.Violation{
			r.violation(file, node.Line, node.Column,
				"acronym %s in %s %s should capitalize only its first letter", acronym, node.Kind, name),
		}
	}

	return nil
}
