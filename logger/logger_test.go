package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Infof("sweep", "promoted %d movies", 3)

	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "[SWEEP")
	assert.Contains(t, buf.String(), "promoted 3 movies")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", NoColor: true, Terminal: &buf})
	require.NoError(t, err)

	l.Info("HTTP", "hidden")
	l.Warn("HTTP", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOutputIsJSONLines(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	l, err := New(Options{Dir: dir, NoColor: true, Terminal: &buf})
	require.NoError(t, err)

	l.LogTransition("movie", 7, "DRAFT", "COMING_SOON")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"LIFECYCLE"`)
	assert.Contains(t, string(data), "#7 DRAFT -> COMING_SOON")
	assert.NotContains(t, string(data), `\u003e`)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("SYSTEM", "nothing") })
}
