package model

// TokenKind classifies a coarse lexical token.
type TokenKind int

// Available TokenKind values.
const (
	// TokenIdentifier is a name: types, functions, variables, macros.
	TokenIdentifier TokenKind = iota
	// TokenKeyword is a reserved word of the dialect (class, switch, ...)
	// or a preprocessor directive (#include, #pragma, ...).
	TokenKeyword
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenString is a string literal, including an angle-bracket include
	// target; Text keeps the delimiters.
	TokenString
	// TokenChar is a character literal.
	TokenChar
	// TokenComment is a line or block comment, preserved verbatim.
	TokenComment
	// TokenBrace is one of { } ( ) [ ].
	TokenBrace
	// TokenPunct is any other operator or punctuation token.
	TokenPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenChar:
		return "char"
	case TokenComment:
		return "comment"
	case TokenBrace:
		return "brace"
	case TokenPunct:
		return "punct"
	default:
		return "unknown"
	}
}

// Token is a single lexical token. Line and Column are 1-based and refer to
// the first character of Text. Tokens are produced once and never mutated.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

// Is reports whether the token has exactly the given text.
func (t Token) Is(text string) bool {
	return t.Text == text
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == TokenKeyword && t.Text == text
}

// End returns the column one past the last character of the token. Only
// meaningful for single-line tokens.
func (t Token) End() int {
	return t.Column + len(t.Text)
}
