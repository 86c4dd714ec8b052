package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "conform.dev/pkg/conform/internal/model"
)

// TUI implements an interactive report viewer using Bubble Tea.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	tuiFileStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	tuiFooterStyle = lipgloss.NewStyle().Faint(true)
)

// DisplayReport shows a saved run report. Short reports are printed
// directly; longer ones open a scrollable pager.
func (p *TUI) DisplayReport(report m.RunReport) error {
	lines := renderReportLines(report)

	width, height := 0, 0
	if f, ok := p.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	// If the report fits on screen, just print and exit
	if height == 0 || len(lines) <= height-2 {
		_, err := fmt.Fprint(p.output, strings.Join(lines, "\n")+"\n")
		return err
	}

	model := newReportViewModel(lines, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderReportLines(report m.RunReport) []string {
	counts := report.Counts()

	lines := []string{
		tuiTitleStyle.Render("conform report"),
		"",
		fmt.Sprintf("%d file(s), %d violation(s): %d error, %d warning, %d info",
			len(report.Files), report.TotalViolations(),
			counts[m.SeverityError], counts[m.SeverityWarning], counts[m.SeverityInfo]),
		"",
	}

	for _, file := range report.Files {
		if len(file.Violations) == 0 {
			continue
		}

		header := string(file.File)
		if file.ParseFailed {
			header += " (parse failed)"
		}

		lines = append(lines, tuiFileStyle.Render(header))

		for _, violation := range file.Violations {
			severity := violation.Severity.String()
			if style, ok := severityStyles[violation.Severity]; ok {
				severity = style.Render(severity)
			}

			lines = append(lines, fmt.Sprintf("  %d:%d %s %s [%s]",
				violation.Line, violation.Column, severity, violation.Message, violation.RuleID))
		}

		lines = append(lines, "")
	}

	if report.TotalViolations() == 0 {
		lines = append(lines, "No violations found.")
	}

	return lines
}

// reportViewModel represents the Bubble Tea model for paging a report.
type reportViewModel struct {
	viewport viewport.Model
	content  string
	ready    bool
	quitting bool
}

func newReportViewModel(lines []string, width, height int) reportViewModel {
	model := reportViewModel{content: strings.Join(lines, "\n")}

	if width > 0 && height > 0 {
		model.viewport = viewport.New(width, height-1)
		model.viewport.SetContent(model.content)
		model.ready = true
	}

	return model
}

func (rvm reportViewModel) Init() tea.Cmd {
	return nil
}

func (rvm reportViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !rvm.ready {
			rvm.viewport = viewport.New(msg.Width, msg.Height-1)
			rvm.viewport.SetContent(rvm.content)
			rvm.ready = true
		} else {
			rvm.viewport.Width = msg.Width
			rvm.viewport.Height = msg.Height - 1
		}

		return rvm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rvm.quitting = true
			return rvm, tea.Quit

		case "g", "home":
			rvm.viewport.GotoTop()
			return rvm, nil

		case "G", "end":
			rvm.viewport.GotoBottom()
			return rvm, nil
		}
	}

	var cmd tea.Cmd
	rvm.viewport, cmd = rvm.viewport.Update(msg)

	return rvm, cmd
}

func (rvm reportViewModel) View() string {
	if rvm.quitting {
		return ""
	}

	if !rvm.ready {
		return "loading report..."
	}

	footer := tuiFooterStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit")

	return rvm.viewport.View() + "\n" + footer
}
