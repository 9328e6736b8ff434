// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the logger for a shellfn invocation. It
// writes to stderr only: stdout carries function results, which the
// calling shell may capture.
//
// When stderr is a terminal the output is slog text for humans;
// otherwise it is JSON for whatever is collecting it.
func NewCommandLogger(level slog.Level) *slog.Logger {
	return NewLogger(os.Stderr, level, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewLogger is NewCommandLogger with the destination and handler
// choice made explicit.
func NewLogger(w io.Writer, level slog.Level, text bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
