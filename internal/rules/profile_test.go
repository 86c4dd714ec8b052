package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "conform.dev/pkg/conform/internal/model"
)

func writeProfile(t *testing.T, content string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return m.Path(path)
}

func TestLoadProfile(t *testing.T) {
	t.Run("parses disabled and severity", func(t *testing.T) {
		path := writeProfile(t, "disabled:\n  - line-length\nseverity:\n  switch-default: error\n")

		profile, err := LoadProfile(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"line-length"}, profile.Disabled)
		assert.Equal(t, "error", profile.Severity["switch-default"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile("does-not-exist.yaml")
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeProfile(t, "disabled: {not a list\n")

		_, err := LoadProfile(path)
		require.Error(t, err)
	})
}

func TestProfileApply(t *testing.T) {
	t.Run("merges over base config", func(t *testing.T) {
		profile := &Profile{
			Disabled: []string{LineLengthID},
			Severity: map[string]string{SwitchDefaultID: "error"},
		}

		base := Config{
			Disabled:   []string{TabIndentID},
			Severities: map[string]m.Severity{PascalCaseID: m.SeverityInfo},
		}

		merged, err := profile.Apply(base)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{TabIndentID, LineLengthID}, merged.Disabled)
		assert.Equal(t, m.SeverityError, merged.Severities[SwitchDefaultID])
		assert.Equal(t, m.SeverityInfo, merged.Severities[PascalCaseID])

		// The input config is untouched.
		assert.Equal(t, []string{TabIndentID}, base.Disabled)
		assert.NotContains(t, base.Severities, SwitchDefaultID)
	})

	t.Run("bad severity name", func(t *testing.T) {
		profile := &Profile{Severity: map[string]string{SwitchDefaultID: "fatal"}}

		_, err := profile.Apply(Config{})
		require.Error(t, err)
	})
}
