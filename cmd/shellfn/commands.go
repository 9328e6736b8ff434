// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/cmd/shellfn/demo"
	"github.com/bureau-foundation/shellfn/lib/version"
)

// rootCommand builds the shellfn command tree. Commands read a when
// they run, so the tree can be built before a is populated.
func rootCommand(a *app) *cli.Command {
	return &cli.Command{
		Name: "shellfn",
		Description: `shellfn: call typed functions from the shell.

A manifest describes functions and their parameter types. shellfn turns
each function into a command-line grammar, coerces the arguments to the
declared types, calls the function, and prints the result in a form the
shell can consume.

Global flags go before the command:
  --config <file>      configuration file (default $SHELLFN_CONFIG)
  --log-level <level>  debug, info, warn, or error
  --format <format>    result format: shell or json`,
		Subcommands: []*cli.Command{
			runCommand(a),
			sourceCommand(a),
			functionsCommand(a),
			schemaCommand(a),
			cacheCommand(a),
			demoCommand(a),
			versionCommand(a),
		},
		Examples: []cli.Example{
			{
				Description: "Write out the demo manifest and load its functions",
				Command:     `shellfn demo > demo.jsonc && source "$(shellfn source demo.jsonc)"`,
			},
			{
				Description: "Call a function without loading the wrapper",
				Command:     "shellfn run demo.jsonc multiply 6 7",
			},
			{
				Description: "Show the flags and positionals synthesized for a function",
				Command:     "shellfn run demo.jsonc greet --help",
			},
			{
				Description: "Emit results as JSON lines",
				Command:     "shellfn --format json run demo.jsonc stats 1 2 3",
			},
		},
	}
}

func demoCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "demo",
		Summary: "Print the built-in demo manifest",
		Description: `Print the manifest of the built-in demo module. Save it to a file
to try shellfn without writing a module:

  shellfn demo > demo.jsonc
  source "$(shellfn source demo.jsonc)"
  multiply 6 7`,
		Usage: "shellfn demo",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			_, err := a.stdout.Write(demo.Manifest)
			return err
		},
	}
}

type versionParams struct {
	Full bool `json:"full" flag:"full" desc:"include toolchain, platform, and cache identity"`
}

func versionCommand(a *app) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "shellfn version [--full]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if !params.Full {
				fmt.Fprintf(a.stdout, "shellfn %s\n", version.Info())
				return nil
			}
			fmt.Fprintf(a.stdout, "shellfn %s\n  Identity: %s\n", version.Full(), version.Identity())
			return nil
		},
	}
}
