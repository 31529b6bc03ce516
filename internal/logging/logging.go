// Package logging builds the server's structured logger.
//
// The logger always writes to stderr (or a test buffer): stdout carries the
// protocol stream and must never see log output.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when neither the flag nor the config file sets one.
const DefaultLevel = "info"

const prefix = "coze-workflow-server"

// New creates a logger writing to w at the given level
// (debug, info, warn, error, fatal).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// ParseLevel validates a level name.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// NewTestLogger creates a debug-level logger that writes to a buffer.
func NewTestLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		Prefix:          "test",
	})
	logger.SetLevel(log.DebugLevel)

	return logger, &buf
}
