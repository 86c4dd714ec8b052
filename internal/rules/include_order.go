package rules

import (
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// IncludeOrderID identifies the include ordering rule.
const IncludeOrderID = "include-order"

func init() {
	Register(IncludeOrderID, func(cfg Config) Rule {
		return &includeOrderRule{
			baseRule: baseRule{
				id:       IncludeOrderID,
				severity: cfg.severityFor(IncludeOrderID, m.SeverityWarning),
				targets:  []m.NodeKind{m.NodeIncludeList},
			},
			pchName: cfg.PCHName,
		}
	})
}

// Ranks of the canonical include order.
const (
	rankPCH = iota
	rankBaseClass
	rankGenerated
	rankOther
)

// includeOrderRule checks that includes appear in the order: precompiled
// header, base-class header, generated-class header, then everything else.
// Ambiguous includes classify as "other" and only the relative order of
// recognized groups is enforced.
type includeOrderRule struct {
	baseRule

	pchName string
}

func (r *includeOrderRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	baseHeader := baseClassHeader(file)

	var violations []m.Violation

	maxRank := rankPCH

	for _, directive := range node.Includes.Directives {
		rank := r.classify(directive, baseHeader)

		if rank < maxRank {
			violations = append(violations, r.violation(file, directive.Line, 1,
				"include %q out of order: expected precompiled header, base-class header, generated header, then others", directive.Target))

			continue
		}

		maxRank = rank
	}

	return violations
}

func (r *includeOrderRule) classify(directive m.IncludeDirective, baseHeader string) int {
	base := directive.Target
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}

	switch {
	case r.pchName != "" && base == r.pchName:
		return rankPCH
	case strings.HasSuffix(base, ".generated.h"):
		return rankGenerated
	case baseHeader != "" && base == baseHeader:
		return rankBaseClass
	default:
		return rankOther
	}
}

// baseClassHeader derives the base-class header name from the first class
// declaration with a base clause: class AMyActor : public APawn yields
// "Pawn.h" (the prefix letter is not part of header names).
func baseClassHeader(file *m.SourceFile) string {
	toks := file.Tokens

	for i, tok := range toks {
		if !tok.IsKeyword("class") && !tok.IsKeyword("struct") {
			continue
		}

		// "enum class" is not a class declaration.
		if i > 0 && toks[i-1].IsKeyword("enum") {
			continue
		}

		// Scan the declaration head for a base clause; stop at '{' or ';'.
	head:
		for j := i + 1; j < len(toks); j++ {
			switch toks[j].Text {
			case "{", ";":
				break head
			case ":":
				name := firstBaseName(toks, j+1)
				if name == "" {
					return ""
				}

				if len(name) >= 2 && strings.ContainsRune("AUIFT", rune(name[0])) && name[1] >= 'A' && name[1] <= 'Z' {
					name = name[1:]
				}

				return name + ".h"
			}
		}
	}

	return ""
}

func firstBaseName(toks []m.Token, from int) string {
	for i := from; i < len(toks); i++ {
		tok := toks[i]

		if tok.Is("{") || tok.Is(";") || tok.Is(",") {
			return ""
		}

		if tok.Kind == m.TokenIdentifier {
			return tok.Text
		}
	}

	return ""
}
