// Package rdflog configures the process-wide structured logger.
package rdflog

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures slog based on the RDFSTORE_LOG_LEVEL environment
// variable. Supported levels: debug, info, warn, error; any other value
// selects info. When the variable is unset, slog's default logger is left
// untouched.
func Init() {
	levelName, ok := os.LookupEnv("RDFSTORE_LOG_LEVEL")
	if !ok {
		return
	}

	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
