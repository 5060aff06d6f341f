package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.DebugLevel))

	prog.phase("loaded", "states", 4)
	prog.done("minimized")

	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "states=4")
	assert.Contains(t, out, "minimized")
	assert.Contains(t, out, "elapsed=")
}

func TestInputOutput(t *testing.T) {
	in, out := inputOutput(nil, "out.json")
	assert.Equal(t, defaultInput, in)
	assert.Equal(t, "out.json", out)

	in, out = inputOutput([]string{"a.json"}, "out.json")
	assert.Equal(t, "a.json", in)
	assert.Equal(t, "out.json", out)

	in, out = inputOutput([]string{"a.json", "b.json"}, "out.json")
	assert.Equal(t, "a.json", in)
	assert.Equal(t, "b.json", out)
}
