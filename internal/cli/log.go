package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// done logs msg along with the time elapsed since the progress was created.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", since(p.start))...)
}

// phase logs the end of one step at debug level with the time spent since the previous phase.
func (p *progress) phase(name string, keyvals ...any) {
	p.logger.Debug(name, append(keyvals, "elapsed", since(p.last))...)
	p.last = time.Now()
}

func since(t time.Time) time.Duration {
	return time.Since(t).Round(time.Millisecond)
}
