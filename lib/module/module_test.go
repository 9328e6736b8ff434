// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"context"
	"strings"
	"testing"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/invoke"
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

func echo() invoke.Target {
	return invoke.TargetFunc(func(_ context.Context, args *invoke.Arguments) (any, error) {
		return args.Value("value"), nil
	})
}

func TestRegistry(t *testing.T) {
	first := &Module{Name: "first"}
	second := &Module{Name: "second"}
	registry, err := NewRegistry(second, first)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if got, ok := registry.Lookup("first"); !ok || got != first {
		t.Errorf("Lookup(first) = (%v, %v), want the first module", got, ok)
	}
	if _, ok := registry.Lookup("third"); ok {
		t.Error("Lookup(third) found a module, want none")
	}
	names := registry.Names()
	if strings.Join(names, ",") != "first,second" {
		t.Errorf("Names() = %v, want [first second]", names)
	}
}

func TestRegistryRejectsDuplicatesAndEmptyNames(t *testing.T) {
	if _, err := NewRegistry(&Module{Name: "a"}, &Module{Name: "a"}); err == nil {
		t.Error("NewRegistry with duplicate names succeeded, want error")
	}
	var registry Registry
	if err := registry.Register(&Module{}); err == nil {
		t.Error("Register with empty name succeeded, want error")
	}
	if err := registry.Register(&Module{Name: "ok"}); err != nil {
		t.Errorf("Register on zero Registry: %v", err)
	}
}

func TestCheck(t *testing.T) {
	module := &Module{Name: "demo", Targets: map[string]invoke.Target{"echo": echo(), "extra": echo()}}
	manifest := &funcspec.Manifest{
		Name: "demo",
		Functions: []*funcspec.Function{
			{Name: "echo", Returns: typedesc.Untyped()},
			{Name: "_internal", Returns: typedesc.Untyped()},
		},
	}
	if err := module.Check(manifest); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}

	manifest.Functions = append(manifest.Functions, &funcspec.Function{Name: "missing"})
	err := module.Check(manifest)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("Check = %v, want an error naming missing", err)
	}
}

func TestCoercerIncludesModuleConstructors(t *testing.T) {
	module := &Module{
		Name: "demo",
		Constructors: map[string]coerce.Constructor{
			"Upper": func(text string) (any, error) { return strings.ToUpper(text), nil },
		},
	}
	coercer := module.Coercer()

	value, err := coercer.Coerce(coerce.Single("shout"), typedesc.Unknown("Upper"))
	if err != nil {
		t.Fatalf("Coerce(Upper): %v", err)
	}
	if value != "SHOUT" {
		t.Errorf("Coerce(Upper) = %v, want SHOUT", value)
	}
	if _, err := coercer.Coerce(coerce.Single("/tmp/../etc"), typedesc.Unknown("Path")); err != nil {
		t.Errorf("built-in Path constructor missing: %v", err)
	}
}
