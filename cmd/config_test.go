package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "remirror", configBaseName)
	assert.Equal(t, "remirror.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "scope", scopeFlagName)
	assert.Equal(t, "mirror", mirrorFlagName)
	assert.Equal(t, "only", onlyFlagName)
	assert.Equal(t, "dry-run", dryRunFlagName)
	assert.Equal(t, "yes", yesFlagName)
	assert.Equal(t, "check", checkFlagName)
	assert.Equal(t, "mirror.root", mirrorRootConfigKey)
	assert.Equal(t, "managers.only", onlyConfigKey)
	assert.Equal(t, "REMIRROR", envPrefix)
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
		{"warning", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}
