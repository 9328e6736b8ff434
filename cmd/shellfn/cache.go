// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/lib/stubcache"
)

func cacheCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "cache",
		Summary: "Inspect and prune the wrapper cache",
		Description: `Generated wrappers are cached under the stubs directory of the cache
path (paths.cache in the configuration). Entries are keyed by manifest
content, shellfn build, and manifest location.`,
		Subcommands: []*cli.Command{
			cacheListCommand(a),
			cacheShowCommand(a),
			cachePruneCommand(a),
		},
	}
}

func (a *app) stubCache(logger *slog.Logger) *stubcache.Cache {
	return &stubcache.Cache{Dir: a.config.StubDir(), Clock: a.clock, Logger: logger}
}

type listParams struct {
	cli.JSONOutput
}

// listedEntry is one row of "shellfn cache list".
type listedEntry struct {
	Key      string    `json:"key"`
	Source   string    `json:"source"`
	Identity string    `json:"identity"`
	Created  time.Time `json:"created"`
}

func cacheListCommand(a *app) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List cached wrappers",
		Usage:   "shellfn cache list [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			entries, err := a.stubCache(logger).List()
			if err != nil {
				return err
			}
			listed := make([]listedEntry, len(entries))
			for i, entry := range entries {
				listed[i] = listedEntry{
					Key:      entry.Key.String(),
					Source:   entry.Source,
					Identity: entry.Identity,
					Created:  entry.Created.UTC(),
				}
			}
			if done, err := params.EmitJSON(a.stdout, listed); done {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			for _, entry := range listed {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Key, entry.Created.Format(time.RFC3339), entry.Source)
			}
			return tw.Flush()
		},
	}
}

type pruneParams struct {
	MaxAge time.Duration `json:"max_age" flag:"max-age" desc:"remove entries older than this (default cache.max_age)"`
}

func cachePruneCommand(a *app) *cli.Command {
	var params pruneParams
	return &cli.Command{
		Name:    "prune",
		Summary: "Remove old and unreadable cache entries",
		Usage:   "shellfn cache prune [--max-age <duration>]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			maxAge := params.MaxAge
			if maxAge == 0 {
				maxAge = a.config.MaxAge()
			}
			if maxAge <= 0 {
				return fmt.Errorf("--max-age must be positive, got %s", maxAge)
			}
			removed, err := a.stubCache(logger).Prune(maxAge)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "removed %d cache entries older than %s\n", removed, maxAge)
			return nil
		},
	}
}

func cacheShowCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Print a cache entry in CBOR diagnostic notation",
		Usage:   "shellfn cache show <key>",
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one cache key\n\nRun 'shellfn cache show --help' for usage.")
			}
			key, err := stubcache.ParseKey(args[0])
			if err != nil {
				return err
			}
			diagnostic, err := a.stubCache(logger).Diagnose(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, diagnostic)
			return nil
		},
	}
}
