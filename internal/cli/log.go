// Package cli implements the stackchart command-line interface.
//
// This package provides commands for rendering chart documents to SVG,
// PNG, PDF or JSON, serving renders over HTTP, converting documents
// between YAML, TOML and JSON, and managing the artifact cache. The CLI is
// built using cobra and logs through the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Draw chart documents from files, stdin or http(s) URLs
//   - pick: Choose a chart document from a directory and render it
//   - serve: Run the HTTP render server
//   - convert: Re-encode a chart document as YAML, TOML or JSON
//   - list: Show chart types, output formats and font families
//   - cache: Inspect and clear the artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. At debug
// level the pipeline, cache and server observability hooks log every
// event through the same logger.
//
// # Example
//
//	import "github.com/matzehuels/stackchart/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        fmt.Fprintln(os.Stderr, cli.FormatError(err))
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs its completion
// with the elapsed duration. It is meant for sequential use by a single
// goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time
// as the start. Call done (or read elapsed) when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered sales.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}
