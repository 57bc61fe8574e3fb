// Package logging builds the structured logger shared by all commands.
//
// Records go to stderr so command output on stdout stays clean. The default
// level is Info; --verbose lowers it to Debug, which is where the generator
// reports every directory and file it creates.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format specifies the output format for logs.
type Format string

const (
	// FormatText outputs key=value pairs.
	FormatText Format = "text"
	// FormatJSON outputs one JSON object per record.
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Format  Format
	Verbose bool
	Writer  io.Writer // default: os.Stderr
}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q: must be 'text' or 'json'", s)
	}
}

// New creates a logger from opts.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Interactive CLI output; timestamps add noise.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(h)
}
