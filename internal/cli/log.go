// Package cli implements the gradslides command-line interface.
//
// The commands read gradslides.toml (see package config), load the graduate
// tables and hand them to the deck pipeline. Progress is reported through
// pipeline hooks that print styled status lines; diagnostics go to the
// charmbracelet/log logger on stderr.
//
// # Commands
//
// The main commands are:
//   - generate: Build all decks (also the default when no command is given)
//   - inspect: Show the partitions and honors distribution of the inputs
//   - match: Report how many graduates the employer table covers
//   - config: Create or print the configuration file
//   - watch: Re-render the sample slide whenever the layout changes
//   - pick: Choose one deck interactively and build only that one
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Example
//
//	import "github.com/matzehuels/gradslides/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 412 graduates (87ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
