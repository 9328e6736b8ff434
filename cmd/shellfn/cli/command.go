// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command represents a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g., "cache", "prune").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the command's
	// own help output.
	Description string

	// Usage is the usage string (e.g., "shellfn source <manifest> [flags]").
	// If empty, it is synthesized from the command path and subcommands.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Params returns a pointer to the command's parameter struct. Its
	// tagged fields become flags (see [BindFlags]) and are populated
	// before Run is called. If nil, the command accepts no flags.
	Params func() any

	// PassThrough hands every argument after the command name to Run
	// untouched. Only a leading help flag is intercepted. Used by
	// commands that forward arguments to a parser of their own.
	PassThrough bool

	// Subcommands are nested commands dispatched by the first positional arg.
	Subcommands []*Command

	// Run executes the command with the remaining args (after flag
	// parsing). If both Run and Subcommands are set, Run is used when
	// no subcommand matches.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	// parent is set during dispatch to build the full command path for help.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Execute parses args and dispatches to the appropriate subcommand or Run
// function. This is the main entry point for the command tree.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(ctx, args[1:], logger)
			}
		}
		if c.Run == nil {
			return c.unknownCommand(name)
		}
	}

	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("subcommand required")
		}
		return fmt.Errorf("subcommand required (got flag %q)", args[0])
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		return fmt.Errorf("no action defined for %q", c.fullName())
	}

	if c.PassThrough {
		return c.Run(ctx, args, logger)
	}

	flagSet := c.flagSet()
	// pflag's own error output and usage dump are replaced by the
	// message built below.
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		message := err.Error()
		if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				return fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
					message, suggestion, c.fullName())
			}
		}
		return fmt.Errorf("%s\n\nRun '%s --help' for usage.", message, c.fullName())
	}
	return c.Run(ctx, flagSet.Args(), logger)
}

func (c *Command) unknownCommand(name string) error {
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, c.fullName())
	}
	return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
}

// flagSet builds the command's flags from Params. Commands without
// Params get an empty set so that stray flags are still rejected.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Params == nil {
		return pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	}
	return FlagsFromParams(c.Name, c.Params())
}

// PrintHelp writes structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Params != nil {
		flagSet := c.flagSet()
		var flagHelp strings.Builder
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName returns the complete command path (e.g., "shellfn cache prune").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
