package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the application logger from the global flags. The
// returned func closes the log file, if one was opened.
func newLogger() (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	closeLog := func() error { return nil }
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeLog = f, f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           level,
	})
	return logger, closeLog, nil
}

// silenceStderr discards log output while the TUI owns the terminal, unless
// the logger writes to --log-file. The returned func points it back at stderr.
func silenceStderr(logger *log.Logger, stderr io.Writer) func() {
	if flagLogFile != "" {
		return func() {}
	}
	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(stderr) }
}
