// Package model defines the data structures shared by the conformance checker.
package model

// Path represents a file system path.
type Path string

// SourceFile is a single loaded source file: its path, the raw line array
// (kept for message context and line-granular rules) and the token sequence
// produced by the lexer. A SourceFile is immutable once loaded and is owned
// by exactly one checking pass.
type SourceFile struct {
	Path   Path
	Lines  []string
	Tokens []Token
}

// Line returns the raw text of the 1-based line number, or "" when the
// number is out of range.
func (f *SourceFile) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}

	return f.Lines[n-1]
}

// FileStat is the per-file inventory shown by the list command: how many
// tokens the lexer produced and how many structural nodes the parser built.
type FileStat struct {
	File        Path `json:"file"`
	Tokens      int  `json:"tokens"`
	Nodes       int  `json:"nodes"`
	ParseFailed bool `json:"parseFailed,omitempty"`
}
