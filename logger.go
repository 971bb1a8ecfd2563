package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON slog.Logger writing to w. Debug runs also record
// the source position of each line. Every record carries the config path so
// logs from several profiles can be told apart.
func NewLogger(w io.Writer, debug bool, cfgPath string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: debug})
	return slog.New(h).With("config", cfgPath)
}
