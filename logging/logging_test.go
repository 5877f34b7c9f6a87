package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		assert.NilError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, `unknown log level: "loud"`)
}

func TestNewWritesPlainTextToFiles(t *testing.T) {
	dir := fs.NewDir(t, "logging")
	defer dir.Remove()

	f, err := os.Create(dir.Join("out.log"))
	assert.NilError(t, err)
	logger := New(f, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("header and row field count mismatch", "path", "data.csv", "empty", "", "row", 2)
	assert.NilError(t, f.Close())

	got, err := os.ReadFile(dir.Join("out.log"))
	assert.NilError(t, err)
	out := string(got)
	assert.Check(t, !strings.Contains(out, "hidden"))
	assert.Check(t, is.Contains(out, "WRN header and row field count mismatch path=data.csv row=2"))
	assert.Check(t, !strings.Contains(out, "empty="))
	assert.Check(t, !strings.Contains(out, "\x1b["))
}
