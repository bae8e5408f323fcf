package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the process logger. level comes from the config file and
// --debug overrides it. Without a log file diagnostics go to fallback, which
// is io.Discard while the TUI owns the terminal.
func (c *CLI) newLogger(level, file string, fallback io.Writer) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if c.Debug {
		lvl = log.DebugLevel
	}
	if c.LogFile != "" {
		file = c.LogFile
	}

	if file == "" {
		return log.NewWithOptions(fallback, log.Options{Level: lvl}), func() {}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	closer := func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return logger, closer, nil
}
