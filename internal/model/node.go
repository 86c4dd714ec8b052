package model

// NodeKind tags a structural node variant.
type NodeKind int

// Available NodeKind values.
const (
	// NodeFile is the root node of a parsed file. Line-granular rules
	// (indentation, line length, comment spacing) target this kind.
	NodeFile NodeKind = iota
	// NodeClass is a class or struct declaration.
	NodeClass
	// NodeFunction is a free function or method definition/declaration.
	NodeFunction
	// NodeVariable is a variable declaration (member, parameter or local).
	NodeVariable
	// NodeEnum is an enum declaration.
	NodeEnum
	// NodeIncludeList is the ordered list of include directives of a file.
	NodeIncludeList
	// NodeSwitch is a switch statement with its case blocks.
	NodeSwitch
	// NodeOpaque is an unrecognized construct; no rules apply to it.
	NodeOpaque
)

func (k NodeKind) String() string {
	switch k {
	case NodeFile:
		return "file"
	case NodeClass:
		return "class"
	case NodeFunction:
		return "function"
	case NodeVariable:
		return "variable"
	case NodeEnum:
		return "enum"
	case NodeIncludeList:
		return "include-list"
	case NodeSwitch:
		return "switch"
	case NodeOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Node is a shallow parse-tree element. Exactly one of the payload pointers
// matching Kind is set. Every non-root node has a single owning parent;
// Children preserve source order, which ordering rules rely on.
type Node struct {
	Kind     NodeKind
	Line     int
	Column   int
	EndLine  int
	Children []*Node

	Class    *ClassDecl
	Function *FunctionDecl
	Variable *VariableDecl
	Enum     *EnumDecl
	Includes *IncludeList
	Switch   *SwitchBlock
}

// Walk visits the node and all its descendants in source order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)

	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// MemberKind classifies a class member for ordering rules.
type MemberKind int

// Member kinds in canonical declaration order.
const (
	MemberConstructor MemberKind = iota
	MemberDestructor
	MemberOverride
	MemberFunction
	MemberVariable
)

func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberDestructor:
		return "destructor"
	case MemberOverride:
		return "overridden function"
	case MemberFunction:
		return "function"
	case MemberVariable:
		return "variable"
	default:
		return "member"
	}
}

// Member is a single class member in source order.
type Member struct {
	Kind       MemberKind
	Name       string
	Visibility string // "public", "protected" or "private"
	Line       int
	Column     int
}

// ClassDecl carries the fields of a class or struct declaration.
type ClassDecl struct {
	Name       string
	Base       string // first base-class name, "" when none
	IsStruct   bool
	IsTemplate bool

	HasVirtualMethod     bool
	HasVirtualDestructor bool
	HasDestructor        bool

	// Members in source order, each tagged with the visibility group that
	// was active at its declaration.
	Members []Member

	// BraceLine/BraceColumn locate the opening brace of the body; 0 when
	// the declaration is a forward declaration without a body.
	BraceLine   int
	BraceColumn int
}

// FunctionDecl carries the fields of a function definition or declaration.
type FunctionDecl struct {
	Name       string
	ReturnType string
	IsVirtual  bool
	IsOverride bool
	HasBody    bool

	BraceLine   int
	BraceColumn int
}

// VariableDecl carries the fields of a variable declaration relevant to
// naming and pointer-spacing rules. Column positions come straight from the
// underlying tokens so spacing can be reconstructed.
type VariableDecl struct {
	Type   string
	Name   string
	IsBool bool

	// TypeEndColumn is the column one past the last character of the type
	// token on NameLine's line; Ptr is "*", "&", "**" etc. or "" for plain
	// declarations. All positions are only comparable when the declaration
	// sits on a single line, which the parser guarantees for these fields
	// (multi-line declarations leave Ptr empty).
	TypeEndColumn int
	Ptr           string
	PtrColumn     int
	NameColumn    int
}

// EnumDecl carries the fields of an enum declaration.
type EnumDecl struct {
	Name        string
	IsEnumClass bool
}

// IncludeDirective is a single #include line.
type IncludeDirective struct {
	Target string // the include target without delimiters, e.g. "Engine.h"
	Angle  bool   // true for <...> includes
	Line   int
}

// IncludeList is the ordered include directives of a file.
type IncludeList struct {
	Directives []IncludeDirective
}

// CaseBlock is one case or default block inside a switch statement.
type CaseBlock struct {
	Label   string // "case <expr>" or "default"
	Line    int
	Column  int
	Default bool

	// StatementCount counts statements between this label and the next one
	// (or the closing brace). Terminated reports whether the block ends in
	// break/return/continue/goto; FallthroughComment reports whether a
	// fallthrough annotation comment appears inside the block.
	StatementCount     int
	Terminated         bool
	FallthroughComment bool
}

// SwitchBlock carries the fields of a switch statement.
type SwitchBlock struct {
	Cases      []CaseBlock
	HasDefault bool

	BraceLine   int
	BraceColumn int
}
