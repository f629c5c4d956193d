package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf, Component: "test"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	want := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, entry := range entries {
		assert.Equal(t, want[i], entry["level"], "line %d", i)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: WARN, Format: JSONFormat, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	assert.Len(t, decodeLines(t, &buf), 2)
	assert.False(t, logger.Enabled(INFO), "INFO should be disabled at WARN level")
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "geometry"})

	logger.Info("domain computed", map[string]interface{}{
		"min_year": 1993,
		"max_year": 2016,
	})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, "domain computed", entry["msg"])
	assert.Equal(t, "geometry", entry["component"])
	assert.Equal(t, float64(1993), entry["min_year"])
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: TextFormat, Output: &buf, Component: "renderer"})

	logger.Info("chart rendered", map[string]interface{}{"format": "svg"})

	output := buf.String()
	for _, want := range []string{"level=INFO", "component=renderer", `msg="chart rendered"`, "format=svg"} {
		assert.Contains(t, output, want)
	}
}

func TestWithComponentSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "base"})
	child := base.WithComponent("fetcher")

	base.SetLevel(ERROR)
	child.Info("filtered")
	child.Error("kept", errors.New("boom"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "fetcher", entries[0]["component"])
	assert.Equal(t, "boom", entries[0]["error"])
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatalf("cannot continue: %s", "bad config")

	assert.Equal(t, 1, code)
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "FATAL", entries[0]["level"])
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf}))
	Info("global info message")
	Warn("global warn message")
	Debug("filtered")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "global warn message", entries[1]["msg"])
}

func TestParseSettings(t *testing.T) {
	lvl, ok := ParseLogLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, DEBUG, lvl)

	lvl, ok = ParseLogLevel("warning")
	assert.True(t, ok)
	assert.Equal(t, WARN, lvl)

	_, ok = ParseLogLevel("verbose")
	assert.False(t, ok, "unknown level should not parse")

	f, ok := ParseLogFormat("TEXT")
	assert.True(t, ok)
	assert.Equal(t, TextFormat, f)

	_, ok = ParseLogFormat("xml")
	assert.False(t, ok, "unknown format should not parse")
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", map[string]interface{}{"iteration": i})
	}
}
