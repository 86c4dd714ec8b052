package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "conform", configBaseName)
	assert.Equal(t, "conform.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "no-save", noSaveFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", parallelFlagName)
	assert.Equal(t, "check.parallel", checkParallelConfigKey)
	assert.Equal(t, "check.fail_fast", checkFailFastConfigKey)
	assert.Equal(t, "check.format", checkFormatConfigKey)
	assert.Equal(t, "check.max_line_length", maxLineLengthConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "rules.disabled", rulesDisabledConfigKey)
	assert.Equal(t, "rules.severity", rulesSeverityConfigKey)
	assert.Equal(t, ".conform-reports", defaultReportsDir)
	assert.Equal(t, false, defaultNoSave)
	assert.Equal(t, 0, defaultCheckParallel)
	assert.Equal(t, "text", defaultCheckFormat)
	assert.Equal(t, 120, defaultMaxLineLength)
	assert.Equal(t, "CONFORM", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"numeric", "-4", slog.LevelDebug},
		{"mixed case", "ERROR", slog.LevelError},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	configureLogger(logPath, true)
	require.NotNil(t, globalLogger)

	slog.Info("logger smoke test")

	_, err := os.Stat(logPath)
	require.NoError(t, err)
}
