// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/grammar"
)

type functionsParams struct {
	cli.JSONOutput
}

// functionSummary is one row of "shellfn functions".
type functionSummary struct {
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
	Usage   string `json:"usage"`
	Returns string `json:"returns,omitempty"`
}

func functionsCommand(a *app) *cli.Command {
	var params functionsParams
	return &cli.Command{
		Name:    "functions",
		Summary: "List the functions a manifest exports",
		Usage:   "shellfn functions <manifest> [--json]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one manifest path\n\nRun 'shellfn functions --help' for usage.")
			}
			l, err := a.load(ctx, args[0])
			if err != nil {
				return err
			}
			summaries, err := summarize(l.manifest)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(a.stdout, summaries); done {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			for _, summary := range summaries {
				fmt.Fprintf(tw, "%s\t%s\n", summary.Name, summary.Summary)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if variables := l.manifest.ExportedVariables(); len(variables) > 0 {
				fmt.Fprintf(a.stdout, "\nVariables: %s\n", strings.Join(variables, ", "))
			}
			return nil
		},
	}
}

func summarize(manifest *funcspec.Manifest) ([]functionSummary, error) {
	var summaries []functionSummary
	for _, function := range manifest.ExportedFunctions() {
		g, err := grammar.Synthesize(function)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", function.Name, err)
		}
		summary := functionSummary{
			Name:    function.Name,
			Summary: firstLine(function.Doc),
			Usage:   strings.TrimPrefix(g.Usage(), "usage: "),
		}
		if function.Returns != nil {
			summary.Returns = function.Returns.String()
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}

func schemaCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Print the JSON Schema of a function's parameters",
		Description: `Print a JSON Schema object describing a function's parameters: their
types, defaults, which are required, and how each is passed. Tools that
build invocations programmatically can validate against it.`,
		Usage: "shellfn schema <manifest> <function>",
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("expected a manifest and a function name\n\nRun 'shellfn schema --help' for usage.")
			}
			l, err := a.load(ctx, args[0])
			if err != nil {
				return err
			}
			function, err := l.function(args[1])
			if err != nil {
				return err
			}
			return cli.WriteJSON(a.stdout, funcspec.InputSchema(function))
		},
	}
}
