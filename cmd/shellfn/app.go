// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/shellfn/cmd/shellfn/demo"
	"github.com/bureau-foundation/shellfn/lib/clock"
	"github.com/bureau-foundation/shellfn/lib/config"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/module"
	"github.com/bureau-foundation/shellfn/lib/render"
	"github.com/bureau-foundation/shellfn/lib/suggest"
)

// app carries the process-wide state commands share. Tests build one
// over buffers and a temporary cache directory.
type app struct {
	config *config.Config

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader

	// stdinAttached is bind.DetectStdin(os.Stdin), decided once.
	stdinAttached bool

	// styled enables help styling; set when stdout is a terminal.
	styled bool

	registry   *module.Registry
	clock      clock.Clock
	executable string
}

// builtinModules is the registry of modules compiled into the binary.
func builtinModules() (*module.Registry, error) {
	return module.NewRegistry(demo.Module())
}

func (a *app) format() render.Format {
	format, err := render.ParseFormat(a.config.Output.Format)
	if err != nil {
		return render.FormatShell
	}
	return format
}

// loaded is a manifest resolved against the module implementing it.
type loaded struct {
	manifest *funcspec.Manifest
	module   *module.Module

	// path is the manifest's absolute path.
	path string
}

// load reads the manifest at source and finds its module.
func (a *app) load(ctx context.Context, source string) (*loaded, error) {
	absolute, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", source, err)
	}
	extractor := funcspec.ManifestExtractor{FS: os.DirFS(filepath.Dir(absolute))}
	manifest, err := extractor.Extract(ctx, filepath.Base(absolute))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	mod, ok := a.registry.Lookup(manifest.Name)
	if !ok {
		return nil, fmt.Errorf("manifest %s names module %q, which is not built into shellfn (available: %s)",
			source, manifest.Name, strings.Join(a.registry.Names(), ", "))
	}
	if err := mod.Check(manifest); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", source, err)
	}
	return &loaded{manifest: manifest, module: mod, path: absolute}, nil
}

// function returns an exported function by name, suggesting the
// closest exported name when there is no match.
func (l *loaded) function(name string) (*funcspec.Function, error) {
	if function, ok := l.manifest.Function(name); ok {
		return function, nil
	}
	var names []string
	for _, function := range l.manifest.ExportedFunctions() {
		names = append(names, function.Name)
	}
	if suggestion := suggest.Closest(name, names); suggestion != "" {
		return nil, fmt.Errorf("module %s has no function %q (did you mean %q?)", l.manifest.Name, name, suggestion)
	}
	return nil, fmt.Errorf("module %s has no function %q", l.manifest.Name, name)
}
