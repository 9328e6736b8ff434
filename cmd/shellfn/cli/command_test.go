// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func execute(t *testing.T, root *Command, args ...string) error {
	t.Helper()
	return root.Execute(context.Background(), args, discardLogger())
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "shellfn",
		Subcommands: []*Command{
			{Name: "version", Run: func(context.Context, []string, *slog.Logger) error { called = "version"; return nil }},
			{Name: "source", Run: func(context.Context, []string, *slog.Logger) error { called = "source"; return nil }},
		},
	}
	if err := execute(t, root, "source"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "source" {
		t.Errorf("dispatched to %q, want %q", called, "source")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string
	root := &Command{
		Name: "shellfn",
		Subcommands: []*Command{{
			Name: "cache",
			Subcommands: []*Command{{
				Name: "show",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "cache show"
					receivedArgs = args
					return nil
				},
			}},
		}},
	}
	if err := execute(t, root, "cache", "show", "abc123"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "cache show" {
		t.Errorf("dispatched to %q, want %q", called, "cache show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "abc123" {
		t.Errorf("args = %v, want [abc123]", receivedArgs)
	}
}

type pruneParams struct {
	MaxAge time.Duration `flag:"max-age" desc:"remove entries older than this" default:"24h"`
	DryRun bool          `flag:"dry-run,n" desc:"only report"`
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var params pruneParams
	var receivedArgs []string
	command := &Command{
		Name:   "prune",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}
	if err := execute(t, command, "--max-age", "2h", "-n", "extra"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.MaxAge != 2*time.Hour {
		t.Errorf("MaxAge = %v, want 2h", params.MaxAge)
	}
	if !params.DryRun {
		t.Error("DryRun = false, want true")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra" {
		t.Errorf("args = %v, want [extra]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	var params pruneParams
	command := &Command{
		Name:   "prune",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}
	err := execute(t, command, "--max-agee", "1h")
	if err == nil {
		t.Fatal("Execute() = nil, want unknown flag error")
	}
	if !strings.Contains(err.Error(), "did you mean --max-age?") {
		t.Errorf("error = %q, want a --max-age suggestion", err)
	}
	if !strings.Contains(err.Error(), "Run 'prune --help' for usage.") {
		t.Errorf("error = %q, want a help pointer", err)
	}
}

func TestCommand_Execute_NoParamsRejectsFlags(t *testing.T) {
	command := &Command{
		Name: "version",
		Run:  func(context.Context, []string, *slog.Logger) error { return nil },
	}
	if err := execute(t, command, "--verbose"); err == nil {
		t.Error("Execute() with a flag on a flagless command = nil, want error")
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "shellfn",
		Subcommands: []*Command{
			{Name: "source", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "schema", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}
	err := execute(t, root, "sorce")
	if err == nil {
		t.Fatal("Execute() = nil, want unknown command error")
	}
	if !strings.Contains(err.Error(), `unknown command "sorce" (did you mean "source"?)`) {
		t.Errorf("error = %q, want a source suggestion", err)
	}

	err = execute(t, root, "zzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want an unknown command error without suggestion", err)
	}
}

func TestCommand_Execute_PassThrough(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name:        "run",
		PassThrough: true,
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}
	args := []string{"demo.jsonc", "multiply", "--x", "3", "-y", "4", "--help"}
	if err := execute(t, command, args...); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Join(receivedArgs, " ") != strings.Join(args, " ") {
		t.Errorf("args = %v, want %v", receivedArgs, args)
	}
}

func TestCommand_Execute_HelpFlagSkipsRun(t *testing.T) {
	ran := false
	command := &Command{
		Name:        "run",
		PassThrough: true,
		Run:         func(context.Context, []string, *slog.Logger) error { ran = true; return nil },
	}
	if err := execute(t, command, "--help"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run was called for --help")
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "cache",
		Subcommands: []*Command{{Name: "prune", Run: func(context.Context, []string, *slog.Logger) error { return nil }}},
	}
	err := execute(t, root)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() = %v, want subcommand required", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var params pruneParams
	root := &Command{
		Name:        "shellfn",
		Description: "Expose functions as shell commands.",
		Subcommands: []*Command{
			{Name: "source", Summary: "Generate a wrapper"},
			{
				Name:    "prune",
				Summary: "Prune the cache",
				Params:  func() any { return &params },
				Examples: []Example{
					{Description: "Remove week-old entries", Command: "shellfn cache prune --max-age 168h"},
				},
			},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()
	for _, want := range []string{
		"Expose functions as shell commands.",
		"Usage:\n  shellfn <command> [flags]",
		"source   Generate a wrapper",
		"Run 'shellfn <command> --help' for more information on a command.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("root help missing %q:\n%s", want, output)
		}
	}

	buffer.Reset()
	prune := root.Subcommands[1]
	prune.parent = root
	prune.PrintHelp(&buffer)
	output = buffer.String()
	for _, want := range []string{
		"Usage:\n  shellfn prune [flags]",
		"--max-age duration",
		"-n, --dry-run",
		"# Remove week-old entries\n  shellfn cache prune --max-age 168h",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("prune help missing %q:\n%s", want, output)
		}
	}
}
