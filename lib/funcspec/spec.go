// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package funcspec

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Kind is a parameter's calling convention.
type Kind uint8

const (
	// PositionalOnly parameters are bound by position only and have no
	// flag form.
	PositionalOnly Kind = iota
	// PositionalOrKeyword parameters are bound by position or by flag.
	PositionalOrKeyword
	// KeywordOnly parameters are bound by flag only.
	KeywordOnly
)

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	switch k {
	case PositionalOnly:
		return "positional_only"
	case PositionalOrKeyword:
		return "positional_or_keyword"
	case KeywordOnly:
		return "keyword_only"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// ParseKind parses the manifest spelling of a kind. The empty string
// is positional-or-keyword.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "positional_only":
		return PositionalOnly, nil
	case "", "positional_or_keyword":
		return PositionalOrKeyword, nil
	case "keyword_only":
		return KeywordOnly, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", name)
	}
}

// Parameter describes one parameter of a function.
type Parameter struct {
	Name string
	Kind Kind

	// Type is the declared type. Never nil after extraction; a missing
	// annotation is typedesc.Untyped().
	Type *typedesc.Type

	// Default is used when no value is supplied. Only meaningful when
	// HasDefault is set; a nil Default with HasDefault is an explicit
	// none default.
	Default    any
	HasDefault bool
}

// Required reports whether the parameter has no default.
func (p Parameter) Required() bool { return !p.HasDefault }

// Positional reports whether the parameter can be bound by position.
func (p Parameter) Positional() bool { return p.Kind != KeywordOnly }

// Function is the structural description of a callable: its name,
// docstring, ordered parameters, and return type. Treat a Function as
// immutable once extracted.
type Function struct {
	Name       string
	Doc        string
	Parameters []Parameter
	Returns    *typedesc.Type
}

// Lookup returns the parameter with the given name.
func (f *Function) Lookup(name string) (*Parameter, bool) {
	for i := range f.Parameters {
		if f.Parameters[i].Name == name {
			return &f.Parameters[i], true
		}
	}
	return nil, false
}

// Validate checks that the function has a name and that parameter
// names are present and unique, with valid types.
func (f *Function) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("function has no name")
	}
	seen := make(map[string]bool, len(f.Parameters))
	for _, parameter := range f.Parameters {
		if parameter.Name == "" {
			return fmt.Errorf("function %s: parameter has no name", f.Name)
		}
		if seen[parameter.Name] {
			return fmt.Errorf("function %s: duplicate parameter %q", f.Name, parameter.Name)
		}
		seen[parameter.Name] = true
		if parameter.Kind > KeywordOnly {
			return fmt.Errorf("function %s: parameter %s: invalid kind %d", f.Name, parameter.Name, parameter.Kind)
		}
		if parameter.Type == nil {
			continue
		}
		if err := parameter.Type.Validate(); err != nil {
			return fmt.Errorf("function %s: parameter %s: %w", f.Name, parameter.Name, err)
		}
	}
	return nil
}

// Ordered reports whether parameters are sorted positional-only,
// positional-or-keyword, keyword-only.
func (f *Function) Ordered() bool {
	return slices.IsSortedFunc(f.Parameters, compareKind)
}

// Normalize returns a copy of f whose parameters are stably sorted by
// kind, with nil types replaced by Untyped. The second result reports
// whether any parameter moved.
func (f *Function) Normalize() (*Function, bool) {
	normalized := *f
	normalized.Parameters = slices.Clone(f.Parameters)
	for i := range normalized.Parameters {
		if normalized.Parameters[i].Type == nil {
			normalized.Parameters[i].Type = typedesc.Untyped()
		}
	}
	if normalized.Returns == nil {
		normalized.Returns = typedesc.Untyped()
	}
	if f.Ordered() {
		return &normalized, false
	}
	slices.SortStableFunc(normalized.Parameters, compareKind)
	return &normalized, true
}

func compareKind(a, b Parameter) int {
	return int(a.Kind) - int(b.Kind)
}
