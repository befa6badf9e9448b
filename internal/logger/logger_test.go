package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Setup(dir, "debug"))
	t.Cleanup(func() {
		Close()
		SetOutput(&bytes.Buffer{}, slog.LevelInfo)
	})

	Debug("opened workbook", "path", "report.xlsx")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "easyexcel.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "opened workbook")
	assert.Contains(t, string(data), "path=report.xlsx")
}

func TestSetupRejectsBadLevel(t *testing.T) {
	assert.Error(t, Setup(t.TempDir(), "chatty"))
}

func TestSetOutputFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelWarn)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, slog.LevelInfo) })

	Info("hidden")
	Warn("shown")
	Error("also shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "also shown")
}
