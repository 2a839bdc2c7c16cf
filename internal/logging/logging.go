// Package logging sets up slog for the ticket-triage commands. Every logger handed out
// carries a "component" attribute naming the part of the tool that wrote the line.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Components used across the commands
const (
	ComponentCLI    = "cli"
	ComponentTriage = "triage"
	ComponentServer = "server"
	ComponentRetry  = "retry"
)

// Setup installs the process-wide logger from the --log-level and --log-format values.
// A nil w logs to stderr, keeping stdout for results.
func Setup(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// ParseLevel maps a flag value such as "debug" or "WARN" to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// For returns the default logger tagged with component
func For(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
