package debuglog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewStructured builds the structured, machine-readable logger used for
// persistent diagnostics, as distinct from Logger's human-facing --debug
// narrative above.
//
// With no LAURN_LOG_FILE set it discards everything, matching the "debug
// mode off, no log dir" branch of the pattern this is adapted from. When
// LAURN_LOG_FILE is set, records are rotated through lumberjack so a
// long-lived `laurn shell` session (invoked repeatedly via the bash hook)
// does not grow one file without bound.
func NewStructured(env map[string]string) *slog.Logger {
	path := env["LAURN_LOG_FILE"]
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     10, // days
		Compress:   true,
	}

	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// NewStructuredFromEnviron is a convenience wrapper around NewStructured
// reading directly from os.Environ-style process environment.
func NewStructuredFromEnviron() *slog.Logger {
	return NewStructured(map[string]string{"LAURN_LOG_FILE": os.Getenv("LAURN_LOG_FILE")})
}
