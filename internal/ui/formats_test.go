package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestSetting(t *testing.T) {
	buf := capture(t)
	Setting("build_file_syntax", "yaml", "default")

	out := buf.String()
	assert.Contains(t, out, "build_file_syntax")
	assert.Contains(t, out, "yaml")
	assert.Contains(t, out, "(default)")
}

func TestEnvironmentVariable(t *testing.T) {
	buf := capture(t)
	EnvironmentVariable("NSISKIT_LOG_LEVEL", "Logging level", "", "info")
	EnvironmentVariable("NSISKIT_BUILD_FILE_SYNTAX", "Build file syntax", "json", "yaml")

	out := buf.String()
	assert.Contains(t, out, "○")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "json")
}

func TestResultSummarySorted(t *testing.T) {
	buf := capture(t)
	ResultSummary("Conversion", map[string]interface{}{"written": 1, "entries": 12})

	out := buf.String()
	assert.Less(t, strings.Index(out, "entries"), strings.Index(out, "written"))
}
