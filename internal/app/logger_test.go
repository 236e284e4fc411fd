package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelParsing(t *testing.T) {
	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, logLevel(&Config{LogLevel: tc.level}), "level %q", tc.level)
	}
	assert.Equal(t, slog.LevelInfo, logLevel(nil))
}

func TestNewLoggerHonorsConfiguredLevel(t *testing.T) {
	logger := NewLogger(&Config{LogFormat: "json", LogLevel: "warn"})
	ctx := context.Background()

	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}
