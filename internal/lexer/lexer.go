// Package lexer splits source files of the engine C++ dialect into lines
// and coarse lexical tokens. It is deliberately not a full C++ lexer: it
// only needs to recognize identifiers, keywords, literals, comments and
// punctuation well enough for structural parsing and rule matching.
package lexer

import (
	"fmt"
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// ScanError reports a lexical failure (unterminated literal or comment).
// It is file-local: the engine converts it into a single violation and
// skips structural checks for that file only.
type ScanError struct {
	Path   m.Path
	Line   int
	Column int
	Msg    string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// keywords of the dialect. Preprocessor directives are tokenized separately
// with their leading '#'.
var keywords = map[string]struct{}{
	"class": {}, "struct": {}, "enum": {}, "union": {},
	"switch": {}, "case": {}, "default": {},
	"break": {}, "continue": {}, "return": {}, "goto": {},
	"public": {}, "protected": {}, "private": {},
	"virtual": {}, "override": {}, "final": {}, "explicit": {},
	"const": {}, "constexpr": {}, "static": {}, "inline": {}, "mutable": {},
	"bool": {}, "void": {}, "int": {}, "float": {}, "double": {},
	"char": {}, "unsigned": {}, "signed": {}, "long": {}, "short": {}, "auto": {},
	"template": {}, "typename": {}, "using": {}, "namespace": {}, "typedef": {},
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {},
	"new": {}, "delete": {}, "operator": {}, "sizeof": {}, "this": {},
	"true": {}, "false": {}, "nullptr": {},
	"friend": {}, "extern": {}, "volatile": {},
}

// twoCharOps are the multi-character operators the lexer keeps as a single
// token. Everything else is emitted one character at a time, which keeps
// '*' and '&' as standalone tokens for the spacing rules.
var twoCharOps = map[string]struct{}{
	"::": {}, "->": {}, "++": {}, "--": {},
	"<<": {}, ">>": {}, "<=": {}, ">=": {}, "==": {}, "!=": {},
	"&&": {}, "||": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"&=": {}, "|=": {}, "^=": {},
}

type scanner struct {
	path   m.Path
	src    string
	pos    int
	line   int
	col    int
	tokens []m.Token
}

// Scan tokenizes the file contents. The returned SourceFile owns both the
// raw line array and the token sequence. Comment tokens are preserved
// verbatim, and braces inside string or character literals never become
// structural tokens.
func Scan(path m.Path, src []byte) (*m.SourceFile, error) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")

	s := &scanner{
		path: path,
		src:  text,
		line: 1,
		col:  1,
	}

	if err := s.run(); err != nil {
		return nil, err
	}

	return &m.SourceFile{
		Path:   path,
		Lines:  strings.Split(text, "\n"),
		Tokens: s.tokens,
	}, nil
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			s.advance(1)

		case ch == '\n':
			s.pos++
			s.line++
			s.col = 1

		case ch == '/' && s.peek(1) == '/':
			s.scanLineComment()

		case ch == '/' && s.peek(1) == '*':
			if err := s.scanBlockComment(); err != nil {
				return err
			}

		case ch == '"':
			if err := s.scanString('"', m.TokenString); err != nil {
				return err
			}

		case ch == '\'':
			if err := s.scanString('\'', m.TokenChar); err != nil {
				return err
			}

		case ch == '#':
			s.scanDirective()

		case isIdentStart(ch):
			s.scanIdent()

		case isDigit(ch):
			s.scanNumber()

		default:
			s.scanOperator()
		}
	}

	return nil
}

func (s *scanner) peek(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}

	return s.src[s.pos+offset]
}

// advance consumes n bytes on the current line.
func (s *scanner) advance(n int) {
	s.pos += n
	s.col += n
}

func (s *scanner) emit(kind m.TokenKind, text string, line, col int) {
	s.tokens = append(s.tokens, m.Token{
		Kind:   kind,
		Text:   text,
		Line:   line,
		Column: col,
	})
}

func (s *scanner) scanLineComment() {
	line, col := s.line, s.col
	start := s.pos

	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.advance(1)
	}

	s.emit(m.TokenComment, s.src[start:s.pos], line, col)
}

func (s *scanner) scanBlockComment() error {
	line, col := s.line, s.col
	start := s.pos
	s.advance(2)

	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.peek(1) == '/' {
			s.advance(2)
			s.emit(m.TokenComment, s.src[start:s.pos], line, col)

			return nil
		}

		if s.src[s.pos] == '\n' {
			s.pos++
			s.line++
			s.col = 1

			continue
		}

		s.advance(1)
	}

	return &ScanError{Path: s.path, Line: line, Column: col, Msg: "unterminated block comment"}
}

// scanString handles both string and character literals. Literals must end
// on the line they start on; escape sequences are honored so an escaped
// quote does not terminate the literal.
func (s *scanner) scanString(quote byte, kind m.TokenKind) error {
	line, col := s.line, s.col
	start := s.pos
	s.advance(1)

	for s.pos < len(s.src) {
		ch := s.src[s.pos]

		if ch == '\n' {
			break
		}

		if ch == '\\' && s.pos+1 < len(s.src) {
			s.advance(2)

			continue
		}

		if ch == quote {
			s.advance(1)
			s.emit(kind, s.src[start:s.pos], line, col)

			return nil
		}

		s.advance(1)
	}

	return &ScanError{Path: s.path, Line: line, Column: col, Msg: fmt.Sprintf("unterminated %s literal", kind)}
}

// scanDirective tokenizes '#' plus the directive name as a single keyword
// token ("#include", "#pragma", ...). For #include the target is emitted as
// a string token even in its angle-bracket form, so the parser never sees
// '<' and '>' from an include line.
func (s *scanner) scanDirective() {
	line, col := s.line, s.col
	start := s.pos
	s.advance(1)

	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.advance(1)
	}

	directive := s.src[start:s.pos]
	s.emit(m.TokenKeyword, directive, line, col)

	if directive != "#include" {
		return
	}

	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.advance(1)
	}

	if s.pos < len(s.src) && s.src[s.pos] == '<' {
		tline, tcol := s.line, s.col
		tstart := s.pos

		for s.pos < len(s.src) && s.src[s.pos] != '>' && s.src[s.pos] != '\n' {
			s.advance(1)
		}

		if s.pos < len(s.src) && s.src[s.pos] == '>' {
			s.advance(1)
		}

		s.emit(m.TokenString, s.src[tstart:s.pos], tline, tcol)
	}
}

func (s *scanner) scanIdent() {
	line, col := s.line, s.col
	start := s.pos

	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.advance(1)
	}

	text := s.src[start:s.pos]

	kind := m.TokenIdentifier
	if _, ok := keywords[text]; ok {
		kind = m.TokenKeyword
	}

	s.emit(kind, text, line, col)
}

// scanNumber consumes a numeric literal coarsely: hex prefixes, digit
// separators, exponents and type suffixes all fold into one token.
func (s *scanner) scanNumber() {
	line, col := s.line, s.col
	start := s.pos

	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		if isIdentPart(ch) || ch == '.' || ch == '\'' {
			s.advance(1)

			continue
		}

		// Exponent sign: 1e-5, 0x1p+3.
		if (ch == '+' || ch == '-') && s.pos > start {
			prev := s.src[s.pos-1]
			if prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P' {
				s.advance(1)

				continue
			}
		}

		break
	}

	s.emit(m.TokenNumber, s.src[start:s.pos], line, col)
}

func (s *scanner) scanOperator() {
	line, col := s.line, s.col
	ch := s.src[s.pos]

	if s.pos+1 < len(s.src) {
		pair := s.src[s.pos : s.pos+2]
		if _, ok := twoCharOps[pair]; ok {
			s.advance(2)
			s.emit(m.TokenPunct, pair, line, col)

			return
		}
	}

	kind := m.TokenPunct
	switch ch {
	case '{', '}', '(', ')', '[', ']':
		kind = m.TokenBrace
	}

	s.advance(1)
	s.emit(kind, string(ch), line, col)
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
