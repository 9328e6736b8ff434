// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/cli"
	"github.com/bureau-foundation/shellfn/lib/stub"
	"github.com/bureau-foundation/shellfn/lib/stubcache"
	"github.com/bureau-foundation/shellfn/lib/version"
)

type sourceParams struct {
	Print bool `json:"print" flag:"print" desc:"write the wrapper to stdout instead of the wrapper directory"`
}

func sourceCommand(a *app) *cli.Command {
	var params sourceParams
	return &cli.Command{
		Name:    "source",
		Summary: "Generate the shell wrapper for a manifest",
		Description: `Generate a shell wrapper that defines one function per exported
manifest function and declares the exported variables. The wrapper is
written to the wrapper directory under the cache path and its path is
printed, so loading a manifest is:

  source "$(shellfn source demo.jsonc)"

Wrappers are cached by manifest content, shellfn build, and manifest
location. An unchanged manifest is not regenerated.`,
		Usage:  "shellfn source <manifest> [--print]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Load a manifest's functions into the current shell",
				Command:     `source "$(shellfn source tools.jsonc)"`,
			},
			{
				Description: "Inspect the generated wrapper",
				Command:     "shellfn source --print tools.jsonc",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one manifest path\n\nRun 'shellfn source --help' for usage.")
			}
			l, err := a.load(ctx, args[0])
			if err != nil {
				return err
			}
			entry, err := a.wrapper(l, logger)
			if err != nil {
				return err
			}
			if params.Print {
				_, err := io.WriteString(a.stdout, entry.Wrapper)
				return err
			}

			path := filepath.Join(a.config.WrapperDir(), stub.WrapperName(l.path))
			if err := writeFileAtomic(path, []byte(entry.Wrapper)); err != nil {
				return fmt.Errorf("writing wrapper: %w", err)
			}
			logger.Debug("wrote wrapper", "path", path, "key", entry.Key.String())
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}
}

// wrapper returns the generated wrapper for l through the stub cache.
func (a *app) wrapper(l *loaded, logger *slog.Logger) (stubcache.Entry, error) {
	compression, err := stubcache.ParseCompression(a.config.Cache.Compression)
	if err != nil {
		return stubcache.Entry{}, err
	}
	cache := &stubcache.Cache{
		Dir:         a.config.StubDir(),
		Compression: compression,
		Clock:       a.clock,
		Logger:      logger,
	}
	identity := version.Identity()
	key := stubcache.KeyFor(l.manifest.Source, identity, []string{
		"SHELLFN_EXECUTABLE=" + a.executable,
		"SHELLFN_SOURCE=" + l.path,
	})
	return cache.Get(key, func() (stubcache.Entry, error) {
		wrapper, err := stub.Generate(l.manifest, stub.Options{Executable: a.executable, Source: l.path})
		if err != nil {
			return stubcache.Entry{}, err
		}
		return stubcache.Entry{Source: l.path, Identity: identity, Wrapper: wrapper}, nil
	})
}

// writeFileAtomic replaces path so that a shell sourcing it never
// reads a partial wrapper.
func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}
	file, err := os.CreateTemp(directory, ".tmp-*")
	if err != nil {
		return err
	}
	temporary := file.Name()
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporary)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(temporary)
		return err
	}
	if err := os.Chmod(temporary, 0o644); err != nil {
		os.Remove(temporary)
		return err
	}
	if err := os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return err
	}
	return nil
}
