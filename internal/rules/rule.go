// Package rules holds the conformance rule registry and the individual
// style rules. Every rule is an independent, stateless predicate over one
// or more node kinds; rules never observe other rules' output or state
// from other files.
package rules

import (
	"fmt"
	"sync"

	m "conform.dev/pkg/conform/internal/model"
)

// Rule is a single conformance check. Check must be side-effect-free and
// deterministic: the same node always yields the same violations.
type Rule interface {
	// ID is the stable rule identifier used in reports and configuration.
	ID() string

	// Targets lists the node kinds this rule inspects.
	Targets() []m.NodeKind

	// Severity is the effective severity after configuration overrides.
	Severity() m.Severity

	// Check inspects one node and returns zero or more violations. The
	// file is provided for line context only; Check must not retain it.
	Check(node *m.Node, file *m.SourceFile) []m.Violation
}

// Config is the immutable configuration threaded into RuleSet construction
// at startup. It is never mutated mid-run.
type Config struct {
	// Disabled lists rule IDs excluded from the set.
	Disabled []string

	// Severities overrides the default severity per rule ID.
	Severities map[string]m.Severity

	// MaxLineLength is the line-length limit (0 means the default of 120).
	MaxLineLength int

	// PCHName is the project's precompiled header file name, e.g.
	// "EnginePCH.h". Empty disables the PCH slot of the include order.
	PCHName string
}

func (c Config) severityFor(id string, def m.Severity) m.Severity {
	if s, ok := c.Severities[id]; ok {
		return s
	}

	return def
}

// DefaultMaxLineLength applies when the configuration leaves the limit unset.
const DefaultMaxLineLength = 120

func (c Config) maxLineLength() int {
	if c.MaxLineLength > 0 {
		return c.MaxLineLength
	}

	return DefaultMaxLineLength
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func(Config) Rule{}
	// registration order; dispatch within a node kind follows it.
	order []string
)

// Register adds a rule constructor to the global registry. Called from
// init() in each rule file.
func Register(id string, constructor func(Config) Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("rules: duplicate rule registration: %s", id))
	}

	registry[id] = constructor
	order = append(order, id)
}

// All returns the IDs of every registered rule in registration order.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return append([]string(nil), order...)
}

// RuleSet is the fixed, ordered collection of rules for a run. Built once
// at startup from the configuration and never mutated afterwards.
type RuleSet struct {
	rules  []Rule
	byKind map[m.NodeKind][]Rule
}

// NewRuleSet builds the rule set: every registered rule minus the disabled
// ones, each constructed with the configuration applied. Unknown rule IDs
// in the configuration are a hard error (the run must not silently ignore
// a typo in a CI config).
func NewRuleSet(cfg Config) (*RuleSet, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, id := range cfg.Disabled {
		if _, ok := registry[id]; !ok {
			return nil, fmt.Errorf("unknown rule in disabled list: %q", id)
		}
	}

	for id := range cfg.Severities {
		if _, ok := registry[id]; !ok {
			return nil, fmt.Errorf("unknown rule in severity overrides: %q", id)
		}
	}

	disabled := make(map[string]struct{}, len(cfg.Disabled))
	for _, id := range cfg.Disabled {
		disabled[id] = struct{}{}
	}

	rs := &RuleSet{byKind: make(map[m.NodeKind][]Rule)}

	for _, id := range order {
		if _, skip := disabled[id]; skip {
			continue
		}

		rule := registry[id](cfg)
		rs.rules = append(rs.rules, rule)

		for _, kind := range rule.Targets() {
			rs.byKind[kind] = append(rs.byKind[kind], rule)
		}
	}

	return rs, nil
}

// Rules returns the active rules in dispatch order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Check dispatches the node to every rule registered for its kind and
// concatenates the violations. A panicking rule is recovered and recorded
// as an info-severity diagnostic naming the rule; it never aborts the run.
func (rs *RuleSet) Check(node *m.Node, file *m.SourceFile) []m.Violation {
	var violations []m.Violation

	for _, rule := range rs.byKind[node.Kind] {
		violations = append(violations, rs.checkOne(rule, node, file)...)
	}

	return violations
}

// RulePanicID identifies the diagnostic emitted when a rule panics.
const RulePanicID = "rule-panic"

func (rs *RuleSet) checkOne(rule Rule, node *m.Node, file *m.SourceFile) (violations []m.Violation) {
	defer func() {
		if r := recover(); r != nil {
			violations = []m.Violation{{
				File:     file.Path,
				Line:     node.Line,
				Column:   node.Column,
				RuleID:   RulePanicID,
				Severity: m.SeverityInfo,
				Message:  fmt.Sprintf("rule %s failed: %v", rule.ID(), r),
			}}
		}
	}()

	return rule.Check(node, file)
}

// baseRule carries the identity shared by every rule implementation.
type baseRule struct {
	id       string
	severity m.Severity
	targets  []m.NodeKind
}

func (r baseRule) ID() string            { return r.id }
func (r baseRule) Targets() []m.NodeKind { return r.targets }
func (r baseRule) Severity() m.Severity  { return r.severity }

func (r baseRule) violation(file *m.SourceFile, line, col int, format string, args ...any) m.Violation {
	return m.Violation{
		File:     file.Path,
		Line:     line,
		Column:   col,
		RuleID:   r.id,
		Severity: r.severity,
		Message:  fmt.Sprintf(format, args...),
	}
}
