// Package cli implements the schemaview command-line interface.
//
// # Commands
//
// The main commands are:
//   - layout: Lay out a snapshot and write the framed diagram as JSON
//   - inspect: Browse a snapshot in the terminal and preview field hover
//   - serve: Run the HTTP API used by rendering clients
//   - cache: Manage the layout cache
//
// # Configuration
//
// Every command reads ./schemaview.toml (or --config), SCHEMAVIEW_*
// environment variables and .env files before it runs. Command flags take
// precedence over all of them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// [log] section of the config selects the level and text or JSON output.
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

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Loaded 12 tables (4ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
