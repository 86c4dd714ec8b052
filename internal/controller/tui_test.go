package controller

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "conform.dev/pkg/conform/internal/model"
)

func TestTUIDisplayReport(t *testing.T) {
	t.Run("prints directly to non-terminal output", func(t *testing.T) {
		out := &bytes.Buffer{}
		tui := NewTUI(out)

		require.NoError(t, tui.DisplayReport(sampleRunReport()))

		output := out.String()
		assert.Contains(t, output, "conform report")
		assert.Contains(t, output, "Source/Enemy.h")
		assert.Contains(t, output, "boolean IsAlive should carry the b prefix")
		assert.Contains(t, output, "2 file(s), 2 violation(s)")
	})

	t.Run("empty report", func(t *testing.T) {
		out := &bytes.Buffer{}
		tui := NewTUI(out)

		require.NoError(t, tui.DisplayReport(m.RunReport{}))
		assert.Contains(t, out.String(), "No violations found.")
	})

	t.Run("parse failures are marked", func(t *testing.T) {
		report := sampleRunReport()
		report.Files[0].ParseFailed = true

		out := &bytes.Buffer{}
		require.NoError(t, NewTUI(out).DisplayReport(report))
		assert.Contains(t, out.String(), "(parse failed)")
	})
}

func TestRenderReportLines(t *testing.T) {
	lines := renderReportLines(sampleRunReport())

	require.NotEmpty(t, lines)

	// Clean files are omitted from the listing.
	for _, line := range lines {
		assert.NotContains(t, line, "Source/Pawn.h")
	}
}
