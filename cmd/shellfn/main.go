// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/lib/bind"
	"github.com/bureau-foundation/shellfn/lib/clock"
	"github.com/bureau-foundation/shellfn/lib/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// "shellfn run" has already reported a failed call on stderr
		// and only carries the exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags precede the command name: "shellfn --log-level debug run ...".
type globalFlags struct {
	config   string
	logLevel string
	format   string
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	flagSet := pflag.NewFlagSet("shellfn", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&flags.config, "config", "", "configuration file (default $"+config.EnvVar+")")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&flags.format, "format", "", "result format: shell or json")
	if err := flagSet.Parse(args); err != nil {
		return flags, nil, err
	}
	return flags, flagSet.Args(), nil
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	root := rootCommand(a)

	flags, rest, err := parseGlobalFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		root.PrintHelp(os.Stderr)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w\n\nRun 'shellfn --help' for usage.", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level)

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating the shellfn executable: %w", err)
	}
	registry, err := builtinModules()
	if err != nil {
		return err
	}

	*a = app{
		config:        cfg,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		stdin:         os.Stdin,
		stdinAttached: bind.DetectStdin(os.Stdin),
		styled:        term.IsTerminal(int(os.Stdout.Fd())),
		registry:      registry,
		clock:         clock.Real(),
		executable:    executable,
	}
	return root.Execute(ctx, rest, logger)
}

// loadConfig reads the configuration named by --config, falling back
// to $SHELLFN_CONFIG and then the defaults, and applies flag
// overrides before validating.
func loadConfig(flags globalFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.config != "" {
		cfg, err = config.LoadFile(flags.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
