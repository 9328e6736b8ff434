// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	_ "embed"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/invoke"
	"github.com/bureau-foundation/shellfn/lib/module"
)

// Manifest is the demo module's JSONC manifest.
//
//go:embed demo.jsonc
var Manifest []byte

// Module returns the demo module's implementations.
func Module() *module.Module {
	return &module.Module{
		Name: "demo",
		Targets: map[string]invoke.Target{
			"multiply":   invoke.TargetFunc(multiply),
			"greet":      invoke.TargetFunc(greet),
			"fileexists": invoke.TargetFunc(fileExists),
			"grep":       invoke.TargetFunc(grep),
			"head":       invoke.TargetFunc(head),
			"pagetitle":  invoke.TargetFunc(pageTitle),
			"stats":      invoke.TargetFunc(stats),
			"weekday":    invoke.TargetFunc(weekday),
			"request":    invoke.TargetFunc(request),
			"newids":     invoke.TargetFunc(newIDs),
			"kinds":      invoke.TargetFunc(kinds),
		},
		Constructors: map[string]coerce.Constructor{
			"HTML": parseHTML,
		},
	}
}
