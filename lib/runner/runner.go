// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/shellfn/lib/bind"
	"github.com/bureau-foundation/shellfn/lib/clock"
	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/failure"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/grammar"
	"github.com/bureau-foundation/shellfn/lib/invoke"
	"github.com/bureau-foundation/shellfn/lib/render"
)

// Runner executes one command-line invocation of a function:
// synthesize the grammar, parse, bind, call, render.
type Runner struct {
	// Stdout receives results and help text only.
	Stdout io.Writer

	// Stderr receives usage and error lines.
	Stderr io.Writer

	// Stdin is standard input for routing and stream arguments.
	Stdin io.Reader

	// StdinAttached reports whether Stdin carries input. See
	// bind.DetectStdin.
	StdinAttached bool

	// Coercer converts raw input. Nil means coerce.New().
	Coercer *coerce.Coercer

	// Format selects the result rendering.
	Format render.Format

	// Styled enables terminal styling in help output.
	Styled bool

	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger

	// Clock times calls. Nil means the real clock.
	Clock clock.Clock
}

// Run invokes target as the command-line function described by
// function and returns the process exit code. Failures are reported
// on Stderr as a usage line followed by "<name>: error: <message>";
// nothing is written to Stdout for a failed call unless a lazy result
// had already streamed some elements.
func (r *Runner) Run(ctx context.Context, function *funcspec.Function, target invoke.Target, tokens []string) int {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("function", function.Name)

	g, err := grammar.Synthesize(function)
	if err != nil {
		fmt.Fprintf(r.Stderr, "%s: error: %v\n", function.Name, err)
		return failure.ExitFailure
	}
	if g.Reordered {
		logger.Warn("parameters were out of kind order and have been reordered")
	}

	parsed, err := g.Parse(tokens)
	if err != nil {
		return r.fail(g, logger, err)
	}
	if parsed.Help {
		if err := g.WriteHelp(r.Stdout, r.Styled); err != nil {
			return r.fail(g, logger, failure.Invocation(err))
		}
		return 0
	}

	binder := &bind.Binder{
		Coercer:       r.Coercer,
		Stdin:         r.Stdin,
		StdinAttached: r.StdinAttached,
		Logger:        logger,
	}
	args, err := binder.Bind(g, parsed)
	if err != nil {
		return r.fail(g, logger, err)
	}

	manager := &invoke.Manager{Stdin: r.Stdin, Logger: logger, Clock: r.Clock}
	writer := render.NewWriter(r.Stdout, r.Format)
	err = manager.Run(ctx, target, args, func(result invoke.Result) error {
		return writer.Result(ctx, result)
	})
	if err != nil {
		return r.fail(g, logger, err)
	}
	return 0
}

func (r *Runner) fail(g *grammar.Grammar, logger *slog.Logger, err error) int {
	logger.Debug("invocation failed", "kind", failure.KindOf(err), "error", err)
	fmt.Fprintln(r.Stderr, g.Usage())
	fmt.Fprintf(r.Stderr, "%s: error: %v\n", g.Function.Name, err)
	return failure.ExitCode(err)
}
