// Package controller provides output adapters for displaying conformance
// check results.
package controller

import (
	"context"
	"fmt"
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// Format selects how results are rendered.
type Format int

// Available Format values.
const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat converts a format name into a Format value.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}

	return FormatText, fmt.Errorf("unknown output format %q", value)
}

// RuleInfo describes one rule for the catalogue listing.
type RuleInfo struct {
	ID       string
	Severity m.Severity
	Targets  []string
	Disabled bool
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCheck StartMode = iota
	ModeList
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCheckMode sets the UI to check execution mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithListMode sets the UI to file listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines the interface for displaying check results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayFileList(ctx context.Context, stats []m.FileStat) error
	DisplayRunInfo(ctx context.Context, files int, workers int)
	DisplayFileReport(ctx context.Context, report m.FileReport)
	DisplaySummary(ctx context.Context, report m.RunReport) error
	DisplayRuleCatalogue(ctx context.Context, rules []RuleInfo) error
}
