// Package logging configures the application logger.
//
// Storage and network failures in taskdeck are never surfaced to the
// user; this logger is the only place they land.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options holds logger configuration.
type Options struct {
	Level           string // debug, info, warn, error
	Format          string // text, json, logfmt
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns the default logger options.
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Format: "text",
		Prefix: "taskdeck",
	}
}

// New creates a logger writing to w with the given options. Unknown
// level or format strings fall back to the defaults.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           parseLevel(opts.Level),
		Formatter:       parseFormat(opts.Format),
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseFormat(s string) log.Formatter {
	switch s {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
