package rules

import (
	m "conform.dev/pkg/conform/internal/model"
)

// NamingPrefixID identifies the type-prefix rule.
const NamingPrefixID = "naming-prefix"

func init() {
	Register(NamingPrefixID, func(cfg Config) Rule {
		return &namingPrefixRule{baseRule{
			id:       NamingPrefixID,
			severity: cfg.severityFor(NamingPrefixID, m.SeverityWarning),
			targets:  []m.NodeKind{m.NodeClass, m.NodeEnum},
		}}
	})
}

// namingPrefixRule checks that a type name carries the prefix letter of its
// category: U for UObject-derived classes, A for actor-derived classes, I
// for interfaces, T for templates, E for enums and F for everything else.
// The category comes from the declared base class, so the mapping holds
// transitively down the hierarchy.
type namingPrefixRule struct {
	baseRule
}

func (r *namingPrefixRule) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	switch node.Kind {
	case m.NodeEnum:
		return r.checkEnum(node, file)
	case m.NodeClass:
		return r.checkClass(node, file)
	}

	return nil
}

func (r *namingPrefixRule) checkEnum(node *m.Node, file *m.SourceFile) []m.Violation {
	name := node.Enum.Name
	if name == "" {
		return nil
	}

	if hasPrefixLetter(name, 'E') {
		return nil
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column, "enum %s should carry the E prefix (E%s)", name, name),
	}
}

func (r *namingPrefixRule) checkClass(node *m.Node, file *m.SourceFile) []m.Violation {
	decl := node.Class
	if decl.Name == "" {
		return nil
	}

	expected := classCategoryPrefix(decl)
	if hasPrefixLetter(decl.Name, expected) {
		return nil
	}

	kind := "class"
	if decl.IsStruct {
		kind = "struct"
	}

	return []m.Violation{
		r.violation(file, node.Line, node.Column,
			"%s %s derives from %s and should carry the %c prefix", kind, decl.Name, baseForMessage(decl), expected),
	}
}

// classCategoryPrefix maps a declaration to its expected prefix letter.
func classCategoryPrefix(decl *m.ClassDecl) byte {
	if decl.IsTemplate {
		return 'T'
	}

	base := decl.Base

	switch {
	case hasPrefixLetter(base, 'A'):
		return 'A'
	case hasPrefixLetter(base, 'U'):
		return 'U'
	case hasPrefixLetter(base, 'I'):
		return 'I'
	case hasPrefixLetter(base, 'T'):
		return 'T'
	default:
		return 'F'
	}
}

func baseForMessage(decl *m.ClassDecl) string {
	if decl.Base != "" {
		return decl.Base
	}

	return "no base class"
}

// hasPrefixLetter reports whether the name starts with the prefix letter
// followed by an upper-case letter, i.e. the prefix is a real prefix and
// not the first letter of an unprefixed word.
func hasPrefixLetter(name string, prefix byte) bool {
	return len(name) >= 2 && name[0] == prefix && name[1] >= 'A' && name[1] <= 'Z'
}
