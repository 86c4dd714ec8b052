package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "conform.dev/pkg/conform/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd    *cobra.Command
	format Format
	color  bool
}

// NewSimpleUI creates a new SimpleUI. Severity coloring is enabled only
// when the command's output is a terminal and the format is text.
func NewSimpleUI(cmd *cobra.Command, format Format) *SimpleUI {
	color := false

	if format == FormatText {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		}
	}

	return &SimpleUI{
		cmd:    cmd,
		format: format,
		color:  color,
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayFileList prints the discovered source files with their token and
// node counts.
func (s *SimpleUI) DisplayFileList(ctx context.Context, stats []m.FileStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatJSON {
		encoder := json.NewEncoder(s.cmd.OutOrStdout())

		for _, stat := range stats {
			if err := encoder.Encode(stat); err != nil {
				return err
			}
		}

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Tokens", "Nodes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, stat := range stats {
		if stat.ParseFailed {
			table.Append([]string{string(stat.File), "-", "-"})
			continue
		}

		table.Append([]string{string(stat.File), fmt.Sprintf("%d", stat.Tokens), fmt.Sprintf("%d", stat.Nodes)})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())
	s.printf("\n%d file(s)\n", len(stats))

	return nil
}

// DisplayRunInfo shows the run shape before checking starts.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, files int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.format == FormatJSON {
		return
	}

	s.printf("Checking %d file(s) with %d worker(s)\n", files, workers)
}

// DisplayFileReport prints every violation of one file.
func (s *SimpleUI) DisplayFileReport(ctx context.Context, report m.FileReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.format == FormatJSON {
		encoder := json.NewEncoder(s.cmd.OutOrStdout())

		for _, violation := range report.Violations {
			_ = encoder.Encode(violation)
		}

		return
	}

	for _, violation := range report.Violations {
		s.printf("%s\n", s.renderViolation(violation))
	}
}

// DisplaySummary prints the per-severity violation counts and the overall
// outcome.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatJSON {
		return s.displaySummaryJSON(report)
	}

	counts := report.Counts()
	parseFailed := 0

	for _, file := range report.Files {
		if file.ParseFailed {
			parseFailed++
		}
	}

	tableStr := renderSummaryTable(counts, report.TotalViolations())
	s.printf("\n%s", tableStr)
	s.printf("\n%d file(s) checked", len(report.Files))

	if parseFailed > 0 {
		s.printf(", %d failed to parse", parseFailed)
	}

	s.printf("\n")

	return nil
}

func (s *SimpleUI) displaySummaryJSON(report m.RunReport) error {
	counts := report.Counts()

	summary := struct {
		Files      int `json:"files"`
		Violations int `json:"violations"`
		Errors     int `json:"errors"`
		Warnings   int `json:"warnings"`
		Infos      int `json:"infos"`
	}{
		Files:      len(report.Files),
		Violations: report.TotalViolations(),
		Errors:     counts[m.SeverityError],
		Warnings:   counts[m.SeverityWarning],
		Infos:      counts[m.SeverityInfo],
	}

	return json.NewEncoder(s.cmd.OutOrStdout()).Encode(summary)
}

func renderSummaryTable(counts map[m.Severity]int, total int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Severity", "Violations"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, severity := range []m.Severity{m.SeverityError, m.SeverityWarning, m.SeverityInfo} {
		table.Append([]string{severity.String(), fmt.Sprintf("%d", counts[severity])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	return tableBuffer.String()
}

// DisplayRuleCatalogue prints the rule table for the rules command.
func (s *SimpleUI) DisplayRuleCatalogue(ctx context.Context, rules []RuleInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := append([]RuleInfo(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if s.format == FormatJSON {
		encoder := json.NewEncoder(s.cmd.OutOrStdout())

		for _, info := range sorted {
			entry := struct {
				ID       string     `json:"ruleId"`
				Severity m.Severity `json:"severity"`
				Targets  []string   `json:"targets"`
				Disabled bool       `json:"disabled,omitempty"`
			}{info.ID, info.Severity, info.Targets, info.Disabled}

			if err := encoder.Encode(entry); err != nil {
				return err
			}
		}

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Severity", "Targets", "State"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, info := range sorted {
		state := "enabled"
		if info.Disabled {
			state = "disabled"
		}

		table.Append([]string{info.ID, info.Severity.String(), strings.Join(info.Targets, ", "), state})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())

	return nil
}

var severityStyles = map[m.Severity]lipgloss.Style{
	m.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	m.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	m.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
}

func (s *SimpleUI) renderViolation(violation m.Violation) string {
	if !s.color {
		return violation.String()
	}

	severity := violation.Severity.String()
	if style, ok := severityStyles[violation.Severity]; ok {
		severity = style.Render(severity)
	}

	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]",
		violation.File, violation.Line, violation.Column,
		severity, violation.Message, violation.RuleID)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
