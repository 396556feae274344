package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, nil))

	logger.Info("staged batch", "records", 12, "conflicts", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "staged batch")
	assert.Contains(t, out, "records=12")
	assert.Contains(t, out, "conflicts=3")
	// no terminal, no escape codes
	assert.NotContains(t, out, "\033[")
}

func TestConsoleHandler_ComponentBracket(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, nil)).With("component", "import")

	logger.Info("done")

	out := buf.String()
	assert.Contains(t, out, "[import]")
	// shown once in the bracket, not repeated as key=value
	assert.NotContains(t, out, "component=import")
}

func TestConsoleHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	level := slog.LevelWarn
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: level}))

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}
