package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	SetOutput(&buf)
	InitWithLevel(level)
	t.Cleanup(func() { InitWithLevel("info") })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "TRACE", expected: slog.LevelDebug},
		{input: "", expected: slog.LevelInfo},
		{input: "warning", expected: slog.LevelWarn},
		{input: " error ", expected: slog.LevelError},
		{input: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t, "info")

	Debug("hidden")
	Info("shown", "path", "/tmp/a.nlf", "count", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO shown path=/tmp/a.nlf count=3")
	assert.False(t, IsDebugEnabled())
}

func TestDebugEnabled(t *testing.T) {
	buf := captureOutput(t, "debug")

	Debug("visible")
	assert.Contains(t, buf.String(), "DEBUG visible")
	assert.True(t, IsDebugEnabled())
}

func TestTemplates(t *testing.T) {
	buf := captureOutput(t, "info")

	SaveFile("/w/English.json", "12 entries")
	DuplicateKey("Caption", "last")
	Skip("/w/.atom-build.yaml", "existing file kept")
	Fail("write /w/x.nlf", "permission denied")

	out := buf.String()
	assert.Contains(t, out, "💾 Saved: /w/English.json (12 entries)")
	assert.Contains(t, out, `Duplicate key: "Caption" (keeping last value)`)
	assert.Contains(t, out, "Skipped: /w/.atom-build.yaml: existing file kept")
	assert.Contains(t, out, "Failed: write /w/x.nlf: permission denied")
}

func TestLogOperation(t *testing.T) {
	captureOutput(t, "debug")

	boom := errors.New("boom")
	assert.ErrorIs(t, LogOperation("parse_nlf", "a.nlf", func() error { return boom }), boom)
	assert.NoError(t, LogOperation("parse_nlf", "a.nlf", func() error { return nil }))
}
