package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conform.dev/pkg/conform/internal/lexer"
	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/parser"
)

// runRules checks a source snippet with the full rule set and returns every
// violation, in tree walk order.
func runRules(t *testing.T, cfg Config, src string) []m.Violation {
	t.Helper()

	file, err := lexer.Scan("test.cpp", []byte(src))
	require.NoError(t, err)

	ruleSet, err := NewRuleSet(cfg)
	require.NoError(t, err)

	root := parser.Parse(file)

	var violations []m.Violation

	root.Walk(func(node *m.Node) {
		violations = append(violations, ruleSet.Check(node, file)...)
	})

	return violations
}

func byRule(violations []m.Violation, id string) []m.Violation {
	var matched []m.Violation

	for _, v := range violations {
		if v.RuleID == id {
			matched = append(matched, v)
		}
	}

	return matched
}

func TestNamingPrefixRule(t *testing.T) {
	t.Run("actor derived class needs A prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "class SEnemy : public ACharacter\n{\n};\n")

		matched := byRule(violations, NamingPrefixID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "A prefix")
	})

	t.Run("correctly prefixed class passes", func(t *testing.T) {
		violations := runRules(t, Config{}, "class AEnemy : public ACharacter\n{\n};\n")
		assert.Empty(t, byRule(violations, NamingPrefixID))
	})

	t.Run("widget derived class needs U prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "class HealthBar : public UUserWidget\n{\n};\n")

		matched := byRule(violations, NamingPrefixID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "U prefix")
	})

	t.Run("template needs T prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "template<typename T>\nclass RingBuffer\n{\n};\n")

		matched := byRule(violations, NamingPrefixID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "T prefix")
	})

	t.Run("plain struct needs F prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "struct HitInfo\n{\n};\n")

		matched := byRule(violations, NamingPrefixID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "F prefix")
	})

	t.Run("enum needs E prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "enum class Color\n{\n};\n")
		require.Len(t, byRule(violations, NamingPrefixID), 1)

		violations = runRules(t, Config{}, "enum class EColor\n{\n};\n")
		assert.Empty(t, byRule(violations, NamingPrefixID))
	})
}

func TestBooleanPrefixRule(t *testing.T) {
	t.Run("bool without prefix", func(t *testing.T) {
		violations := runRules(t, Config{}, "bool IsAlive;\n")

		matched := byRule(violations, BooleanPrefixID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "bIsAlive")
	})

	t.Run("prefixed bool passes both naming rules", func(t *testing.T) {
		violations := runRules(t, Config{}, "bool bIsAlive;\n")

		assert.Empty(t, byRule(violations, BooleanPrefixID))
		assert.Empty(t, byRule(violations, PascalCaseID))
	})

	t.Run("non-bool is ignored", func(t *testing.T) {
		violations := runRules(t, Config{}, "int32 IsAlive;\n")
		assert.Empty(t, byRule(violations, BooleanPrefixID))
	})
}

func TestPascalCaseRule(t *testing.T) {
	t.Run("snake case variable", func(t *testing.T) {
		violations := runRules(t, Config{}, "int32 my_count;\n")
		require.Len(t, byRule(violations, PascalCaseID), 1)
	})

	t.Run("full acronym capitalization", func(t *testing.T) {
		violations := runRules(t, Config{}, "int32 HTTPCode;\n")

		matched := byRule(violations, PascalCaseID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "HTTP")
	})

	t.Run("two capital run is fine", func(t *testing.T) {
		violations := runRules(t, Config{}, "int32 MyXCoord;\n")
		assert.Empty(t, byRule(violations, PascalCaseID))
	})
}

func TestBraceStyleRule(t *testing.T) {
	t.Run("brace on declaration line", func(t *testing.T) {
		violations := runRules(t, Config{}, "void Update() {\n}\n")
		require.Len(t, byRule(violations, BraceStyleID), 1)
	})

	t.Run("brace on its own line", func(t *testing.T) {
		violations := runRules(t, Config{}, "void Update()\n{\n}\n")
		assert.Empty(t, byRule(violations, BraceStyleID))
	})

	t.Run("class brace", func(t *testing.T) {
		violations := runRules(t, Config{}, "class FThing {\n};\n")
		require.Len(t, byRule(violations, BraceStyleID), 1)
	})
}

func TestPointerSpacingRule(t *testing.T) {
	t.Run("star attached to type", func(t *testing.T) {
		violations := runRules(t, Config{}, "AController* Instigator;\n")
		require.Len(t, byRule(violations, PointerSpacingID), 1)
	})

	t.Run("star attached to name", func(t *testing.T) {
		violations := runRules(t, Config{}, "AController *Instigator;\n")
		assert.Empty(t, byRule(violations, PointerSpacingID))
	})

	t.Run("star floating between", func(t *testing.T) {
		violations := runRules(t, Config{}, "AController * Instigator;\n")
		require.Len(t, byRule(violations, PointerSpacingID), 1)
	})

	t.Run("reference follows the same shape", func(t *testing.T) {
		violations := runRules(t, Config{}, "FVector& Origin;\n")
		require.Len(t, byRule(violations, PointerSpacingID), 1)

		violations = runRules(t, Config{}, "FVector &Origin;\n")
		assert.Empty(t, byRule(violations, PointerSpacingID))
	})
}

func TestSwitchRules(t *testing.T) {
	t.Run("unterminated case", func(t *testing.T) {
		src := "void Handle(int32 Value)\n{\n\tswitch (Value)\n\t{\n\tcase 0:\n\t\tDoThing();\n\tdefault:\n\t\tbreak;\n\t}\n}\n"
		violations := runRules(t, Config{}, src)

		matched := byRule(violations, SwitchFallthroughID)
		require.Len(t, matched, 1)
		assert.Equal(t, 5, matched[0].Line)
	})

	t.Run("fallthrough comment suppresses", func(t *testing.T) {
		src := "void Handle(int32 Value)\n{\n\tswitch (Value)\n\t{\n\tcase 0:\n\t\tDoThing();\n\t\t// fall through\n\tdefault:\n\t\tbreak;\n\t}\n}\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, SwitchFallthroughID))
	})

	t.Run("empty case shares the next body", func(t *testing.T) {
		src := "void Handle(int32 Value)\n{\n\tswitch (Value)\n\t{\n\tcase 0:\n\tcase 1:\n\t\tbreak;\n\tdefault:\n\t\tbreak;\n\t}\n}\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, SwitchFallthroughID))
	})

	t.Run("missing default", func(t *testing.T) {
		src := "void Handle(int32 Value)\n{\n\tswitch (Value)\n\t{\n\tcase 0:\n\t\tbreak;\n\t}\n}\n"
		violations := runRules(t, Config{}, src)
		require.Len(t, byRule(violations, SwitchDefaultID), 1)
	})
}

func TestIncludeOrderRule(t *testing.T) {
	t.Run("generated before base class header", func(t *testing.T) {
		src := "#include \"Enemy.generated.h\"\n#include \"Pawn.h\"\n\nclass AEnemy : public APawn\n{\n};\n"
		violations := runRules(t, Config{}, src)

		matched := byRule(violations, IncludeOrderID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "Pawn.h")
	})

	t.Run("canonical order passes", func(t *testing.T) {
		src := "#include \"EnginePCH.h\"\n#include \"Pawn.h\"\n#include \"Enemy.generated.h\"\n#include <vector>\n\nclass AEnemy : public APawn\n{\n};\n"
		violations := runRules(t, Config{PCHName: "EnginePCH.h"}, src)
		assert.Empty(t, byRule(violations, IncludeOrderID))
	})

	t.Run("pch after other includes", func(t *testing.T) {
		src := "#include <vector>\n#include \"EnginePCH.h\"\n"
		violations := runRules(t, Config{PCHName: "EnginePCH.h"}, src)
		require.Len(t, byRule(violations, IncludeOrderID), 1)
	})

	t.Run("unknown includes never conflict", func(t *testing.T) {
		src := "#include \"Zebra.h\"\n#include \"Aardvark.h\"\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, IncludeOrderID))
	})
}

func TestMemberOrderRule(t *testing.T) {
	t.Run("variable before constructor", func(t *testing.T) {
		src := "class AEnemy\n{\npublic:\n\tint32 Health;\n\tAEnemy();\n};\n"
		violations := runRules(t, Config{}, src)

		matched := byRule(violations, MemberOrderID)
		require.Len(t, matched, 1)
		assert.Contains(t, matched[0].Message, "AEnemy")
	})

	t.Run("visibility label restarts the sequence", func(t *testing.T) {
		src := "class AEnemy\n{\npublic:\n\tint32 Health;\n\nprivate:\n\tAEnemy();\n};\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, MemberOrderID))
	})

	t.Run("canonical order passes", func(t *testing.T) {
		src := "class AEnemy : public AActor\n{\npublic:\n\tAEnemy();\n\t~AEnemy();\n\tvirtual void Tick(float DeltaSeconds) override;\n\tvoid Attack();\n\tint32 Health;\n};\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, MemberOrderID))
	})
}

func TestVirtualDestructorRule(t *testing.T) {
	t.Run("virtual methods without virtual destructor", func(t *testing.T) {
		src := "class FBase\n{\npublic:\n\tvirtual void Run();\n};\n"
		violations := runRules(t, Config{}, src)

		matched := byRule(violations, VirtualDestructorID)
		require.Len(t, matched, 1)
		assert.Equal(t, m.SeverityError, matched[0].Severity)
	})

	t.Run("virtual destructor satisfies", func(t *testing.T) {
		src := "class FBase\n{\npublic:\n\tvirtual ~FBase();\n\tvirtual void Run();\n};\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, VirtualDestructorID))
	})

	t.Run("no virtual methods no requirement", func(t *testing.T) {
		src := "class FPlain\n{\npublic:\n\tvoid Run();\n};\n"
		violations := runRules(t, Config{}, src)
		assert.Empty(t, byRule(violations, VirtualDestructorID))
	})
}

func TestEnumClassRule(t *testing.T) {
	violations := runRules(t, Config{}, "enum EColor\n{\n\tRed\n};\n")
	require.Len(t, byRule(violations, EnumClassID), 1)

	violations = runRules(t, Config{}, "enum class EColor\n{\n\tRed\n};\n")
	assert.Empty(t, byRule(violations, EnumClassID))
}

func TestLayoutRules(t *testing.T) {
	t.Run("space indentation", func(t *testing.T) {
		violations := runRules(t, Config{}, "void Update()\n{\n    DoThing();\n}\n")

		matched := byRule(violations, TabIndentID)
		require.Len(t, matched, 1)
		assert.Equal(t, 3, matched[0].Line)
	})

	t.Run("block comment continuation exempt", func(t *testing.T) {
		violations := runRules(t, Config{}, "/*\n * note\n */\n")
		assert.Empty(t, byRule(violations, TabIndentID))
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		violations := runRules(t, Config{}, "int32 Count;  \n")

		matched := byRule(violations, TrailingWhitespaceID)
		require.Len(t, matched, 1)
		assert.Equal(t, 13, matched[0].Column)
		assert.Equal(t, m.SeverityInfo, matched[0].Severity)
	})

	t.Run("line length uses configured limit", func(t *testing.T) {
		violations := runRules(t, Config{MaxLineLength: 10}, "int32 ReallyLongName;\n")
		require.Len(t, byRule(violations, LineLengthID), 1)

		violations = runRules(t, Config{}, "int32 ReallyLongName;\n")
		assert.Empty(t, byRule(violations, LineLengthID))
	})
}

func TestCommentSpacingRule(t *testing.T) {
	violations := runRules(t, Config{}, "//bad comment\n// good comment\n///doc comment\n//----banner\n")

	matched := byRule(violations, CommentSpacingID)
	require.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0].Line)
}

func TestRuleSet(t *testing.T) {
	t.Run("unknown disabled rule is an error", func(t *testing.T) {
		_, err := NewRuleSet(Config{Disabled: []string{"no-such-rule"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-rule")
	})

	t.Run("unknown severity override is an error", func(t *testing.T) {
		_, err := NewRuleSet(Config{Severities: map[string]m.Severity{"no-such-rule": m.SeverityError}})
		require.Error(t, err)
	})

	t.Run("disabled rule does not fire", func(t *testing.T) {
		violations := runRules(t, Config{Disabled: []string{EnumClassID}}, "enum EColor\n{\n};\n")
		assert.Empty(t, byRule(violations, EnumClassID))
	})

	t.Run("severity override is applied", func(t *testing.T) {
		cfg := Config{Severities: map[string]m.Severity{SwitchDefaultID: m.SeverityError}}
		src := "void Handle(int32 Value)\n{\n\tswitch (Value)\n\t{\n\tcase 0:\n\t\tbreak;\n\t}\n}\n"

		violations := runRules(t, cfg, src)
		matched := byRule(violations, SwitchDefaultID)
		require.Len(t, matched, 1)
		assert.Equal(t, m.SeverityError, matched[0].Severity)
	})

	t.Run("panicking rule becomes a diagnostic", func(t *testing.T) {
		ruleSet := &RuleSet{byKind: map[m.NodeKind][]Rule{
			m.NodeFile: {panicRule{}},
		}}

		file := &m.SourceFile{Path: "test.cpp", Lines: []string{""}}
		node := &m.Node{Kind: m.NodeFile, Line: 1, Column: 1}

		violations := ruleSet.Check(node, file)
		require.Len(t, violations, 1)
		assert.Equal(t, RulePanicID, violations[0].RuleID)
		assert.Equal(t, m.SeverityInfo, violations[0].Severity)
		assert.Contains(t, violations[0].Message, "boom")
	})
}

type panicRule struct{}

func (panicRule) ID() string            { return "panicky" }
func (panicRule) Targets() []m.NodeKind { return []m.NodeKind{m.NodeFile} }
func (panicRule) Severity() m.Severity  { return m.SeverityWarning }
func (panicRule) Check(*m.Node, *m.SourceFile) []m.Violation {
	panic("boom")
}
