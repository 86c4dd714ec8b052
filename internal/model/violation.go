package model

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a violation is.
type Severity int

// Severity levels, ordered by weight.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText renders the severity as its lower-case name so JSON and YAML
// reports stay human-readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name. Used by both report loading and
// profile files.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseSeverity converts a severity name into a Severity value.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}

	return SeverityInfo, fmt.Errorf("unknown severity %q", value)
}

// Violation is a single reported rule failure. It is an immutable value
// record: created by a rule invocation, consumed once by the reporter.
type Violation struct {
	File     Path     `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	RuleID   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", v.File, v.Line, v.Column, v.Severity, v.Message, v.RuleID)
}

// FileReport holds the outcome of checking one file.
type FileReport struct {
	File        Path        `json:"file"`
	ParseFailed bool        `json:"parseFailed,omitempty"`
	Violations  []Violation `json:"violations"`
}

// RunReport aggregates the per-file reports of a whole run, sorted by path.
type RunReport struct {
	Files []FileReport `json:"files"`
}

// HasErrors reports whether any violation carries Error severity. The CLI
// exit status is derived from this.
func (r RunReport) HasErrors() bool {
	for _, file := range r.Files {
		for _, v := range file.Violations {
			if v.Severity == SeverityError {
				return true
			}
		}
	}

	return false
}

// Counts returns the number of violations per severity across all files.
func (r RunReport) Counts() map[Severity]int {
	counts := make(map[Severity]int)

	for _, file := range r.Files {
		for _, v := range file.Violations {
			counts[v.Severity]++
		}
	}

	return counts
}

// TotalViolations returns the number of violations across all files.
func (r RunReport) TotalViolations() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Violations)
	}

	return total
}
