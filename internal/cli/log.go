// Package cli implements the ifsgen command-line interface.
//
// The CLI is built using cobra. Every command hangs off a [CLI] value that
// owns the shared charmbracelet/log logger, so --verbose switches all of
// them to debug output at once.
//
// # Commands
//
//   - render: generate a preset or preset file and write vertices, JSON,
//     SVG, PNG or braille text
//   - view: animate a preset in the terminal, regenerating every frame
//   - serve: HTTP and websocket frame stream
//   - presets: list the preset catalogue or print one preset as TOML
//   - cache: inspect or clear the artifact cache
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, followed
// by any key/value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
