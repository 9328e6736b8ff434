// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/lib/runner"
)

func runCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Summary: "Call a manifest function with command-line arguments",
		Description: `Call one function from a manifest. Arguments after the function name
are parsed by the grammar synthesized from its signature. Positional-only
parameters are positionals. Keyword-only parameters are flags.
Positional-or-keyword parameters accept either form, whether or not
they have a default. Boolean flags also get a --no-name form.

When standard input is a pipe or a file it fills the first stream
parameter left without a value, or else the first positional left
without an argument or default.

Generated wrappers call this command; running it directly is useful for
scripts that should not depend on a sourced wrapper.`,
		Usage:       "shellfn run <manifest> <function> [arguments...]",
		PassThrough: true,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return fmt.Errorf("expected a manifest and a function name\n\nRun 'shellfn run --help' for usage.")
			}
			l, err := a.load(ctx, args[0])
			if err != nil {
				return err
			}
			function, err := l.function(args[1])
			if err != nil {
				return err
			}
			target, _ := l.module.Target(function.Name)

			r := &runner.Runner{
				Stdout:        a.stdout,
				Stderr:        a.stderr,
				Stdin:         a.stdin,
				StdinAttached: a.stdinAttached,
				Coercer:       l.module.Coercer(),
				Format:        a.format(),
				Styled:        a.styled,
				Logger:        logger.With("module", l.manifest.Name),
				Clock:         a.clock,
			}
			if code := r.Run(ctx, function, target, args[2:]); code != 0 {
				return &cli.ExitError{Code: code}
			}
			return nil
		},
	}
}
