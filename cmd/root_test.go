package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "conform.dev/pkg/conform/internal/model"
)

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty defaults to recursive cwd", []string{}, []m.Path{m.Path("./...")}},
		{"single", []string{"./Source/..."}, []m.Path{m.Path("./Source/...")}},
		{
			"multiple",
			[]string{"./Public", "./Private"},
			[]m.Path{m.Path("./Public"), m.Path("./Private")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePaths(tt.args)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseRootCmd(t *testing.T) {
	cmd := baseRootCmd()
	assert.Equal(t, "conform", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := baseRootCmd()

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, output.String(), "conform")
}

func TestRuleConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ruleConfig("")
		require.NoError(t, err)
		assert.Equal(t, defaultMaxLineLength, cfg.MaxLineLength)
		assert.Empty(t, cfg.Disabled)
	})

	t.Run("severity overrides from config", func(t *testing.T) {
		viper.Set(rulesSeverityConfigKey, map[string]string{"switch-default": "error"})
		defer viper.Set(rulesSeverityConfigKey, map[string]string{})

		cfg, err := ruleConfig("")
		require.NoError(t, err)
		assert.Equal(t, m.SeverityError, cfg.Severities["switch-default"])
	})

	t.Run("bad severity name in config", func(t *testing.T) {
		viper.Set(rulesSeverityConfigKey, map[string]string{"switch-default": "fatal"})
		defer viper.Set(rulesSeverityConfigKey, map[string]string{})

		_, err := ruleConfig("")
		require.Error(t, err)
	})

	t.Run("profile merges over config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("disabled:\n  - line-length\n"), 0o600))

		cfg, err := ruleConfig(path)
		require.NoError(t, err)
		assert.Contains(t, cfg.Disabled, "line-length")
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := ruleConfig("does-not-exist.yaml")
		require.Error(t, err)
	})
}
