// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

func parameter(name string, kind funcspec.Kind, expression string) funcspec.Parameter {
	return funcspec.Parameter{Name: name, Kind: kind, Type: typedesc.MustParse(expression)}
}

func withDefault(p funcspec.Parameter, value any) funcspec.Parameter {
	p.Default = value
	p.HasDefault = true
	return p
}

func synthesize(t *testing.T, name string, parameters ...funcspec.Parameter) *Grammar {
	t.Helper()
	g, err := Synthesize(&funcspec.Function{Name: name, Parameters: parameters})
	if err != nil {
		t.Fatalf("Synthesize(%s): %v", name, err)
	}
	return g
}

func multiply(t *testing.T) *Grammar {
	return synthesize(t, "multiply",
		parameter("x", funcspec.PositionalOrKeyword, "int"),
		parameter("y", funcspec.PositionalOrKeyword, "int"),
	)
}

func kinds(t *testing.T) *Grammar {
	return synthesize(t, "kinds",
		parameter("a", funcspec.PositionalOnly, "int"),
		parameter("b", funcspec.PositionalOrKeyword, "int"),
		parameter("c", funcspec.KeywordOnly, "int"),
	)
}

func TestSynthesizeSlots(t *testing.T) {
	g := synthesize(t, "f",
		parameter("source_path", funcspec.PositionalOnly, "str"),
		parameter("dry_run", funcspec.PositionalOrKeyword, "bool"),
		parameter("items", funcspec.PositionalOrKeyword, "list[int]"),
		parameter("point", funcspec.KeywordOnly, "tuple[int, int]"),
		parameter("level", funcspec.KeywordOnly, "Optional[bool]"),
	)

	tests := []struct {
		name    string
		long    string
		short   string
		negated string
		greedy  bool
		arity   int
	}{
		{"source_path", "", "", "", false, 1},
		{"dry_run", "dry-run", "d", "no-dry-run", false, 1},
		{"items", "items", "i", "", true, 0},
		{"point", "point", "p", "", false, 2},
		{"level", "level", "l", "no-level", false, 1},
	}
	for _, test := range tests {
		slot, ok := g.Slot(test.name)
		if !ok {
			t.Fatalf("Slot(%s) missing", test.name)
		}
		if slot.Long != test.long || slot.Short != test.short || slot.Negated != test.negated {
			t.Errorf("%s: flags = (%q, %q, %q), want (%q, %q, %q)",
				test.name, slot.Long, slot.Short, slot.Negated, test.long, test.short, test.negated)
		}
		if slot.Greedy != test.greedy || slot.Arity != test.arity {
			t.Errorf("%s: greedy=%v arity=%d, want greedy=%v arity=%d",
				test.name, slot.Greedy, slot.Arity, test.greedy, test.arity)
		}
	}
}

func TestSynthesizeShortFlagsOnlyWhenUnambiguous(t *testing.T) {
	g := synthesize(t, "f",
		parameter("verbose", funcspec.KeywordOnly, "bool"),
		parameter("value", funcspec.KeywordOnly, "int"),
		parameter("host", funcspec.KeywordOnly, "str"),
		parameter("count", funcspec.KeywordOnly, "int"),
	)
	for name, want := range map[string]string{"verbose": "", "value": "", "host": "", "count": "c"} {
		slot, _ := g.Slot(name)
		if slot.Short != want {
			t.Errorf("%s: Short = %q, want %q", name, slot.Short, want)
		}
	}
}

func TestSynthesizeTrimsDashesFromFlagNames(t *testing.T) {
	g := synthesize(t, "f",
		parameter("_private", funcspec.KeywordOnly, "int"),
		parameter("trailing_", funcspec.PositionalOrKeyword, "int"),
	)
	for name, want := range map[string]string{"_private": "private", "trailing_": "trailing"} {
		slot, _ := g.Slot(name)
		if slot.Long != want {
			t.Errorf("%s: Long = %q, want %q", name, slot.Long, want)
		}
	}

	parsed, err := g.Parse([]string{"--trailing", "1", "--private=3"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !parsed.Bound("_private") || parsed.Values["_private"].Text() != "3" {
		t.Errorf("_private = %v, want 3", parsed.Values["_private"].Values)
	}
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		parameters []funcspec.Parameter
		message    string
	}{
		{
			"flag collision",
			[]funcspec.Parameter{
				parameter("dry_run", funcspec.KeywordOnly, "int"),
				parameter("dry.run", funcspec.KeywordOnly, "int"),
			},
			"both map to flag --dry-run",
		},
		{
			"negated collision",
			[]funcspec.Parameter{
				parameter("cache", funcspec.KeywordOnly, "bool"),
				parameter("no_cache", funcspec.KeywordOnly, "int"),
			},
			"both map to flag --no-cache",
		},
		{
			"reserved help",
			[]funcspec.Parameter{parameter("help", funcspec.KeywordOnly, "str")},
			"--help is reserved",
		},
		{
			"no flag name",
			[]funcspec.Parameter{parameter("__", funcspec.KeywordOnly, "int")},
			"has no letters or digits",
		},
		{
			"duplicate parameter",
			[]funcspec.Parameter{
				parameter("a", funcspec.PositionalOnly, "int"),
				parameter("a", funcspec.PositionalOnly, "int"),
			},
			"duplicate",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Synthesize(&funcspec.Function{Name: "f", Parameters: test.parameters})
			if err == nil {
				t.Fatal("Synthesize succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("error = %q, want it to contain %q", err, test.message)
			}
		})
	}
}

func TestSynthesizeReordersKinds(t *testing.T) {
	g, err := Synthesize(&funcspec.Function{Name: "f", Parameters: []funcspec.Parameter{
		parameter("c", funcspec.KeywordOnly, "int"),
		parameter("a", funcspec.PositionalOnly, "int"),
		{Name: "b"},
	}})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !g.Reordered {
		t.Error("Reordered = false, want true")
	}
	var order []string
	for _, slot := range g.Slots {
		order = append(order, slot.Parameter.Name)
	}
	if got := strings.Join(order, ","); got != "a,b,c" {
		t.Errorf("slot order = %s, want a,b,c", got)
	}
	if slot, _ := g.Slot("b"); slot.Parameter.Type.Tag != typedesc.TagUntyped {
		t.Errorf("nil type not replaced by Untyped: %v", slot.Parameter.Type)
	}
}

func TestSynthesizeUntypedShapeFromDefault(t *testing.T) {
	g := synthesize(t, "f",
		funcspec.Parameter{Name: "quiet", Kind: funcspec.KeywordOnly, Default: false, HasDefault: true},
		funcspec.Parameter{Name: "names", Kind: funcspec.KeywordOnly, Default: []any{"a"}, HasDefault: true},
		funcspec.Parameter{Name: "other", Kind: funcspec.KeywordOnly},
	)
	quiet, _ := g.Slot("quiet")
	if quiet.Negated != "no-quiet" {
		t.Errorf("untyped bool default: Negated = %q, want %q", quiet.Negated, "no-quiet")
	}
	names, _ := g.Slot("names")
	if !names.Greedy {
		t.Error("untyped list default: slot not greedy")
	}
	other, _ := g.Slot("other")
	if other.Greedy || other.Switch() || other.Arity != 1 {
		t.Errorf("untyped without default: greedy=%v switch=%v arity=%d, want a plain scalar", other.Greedy, other.Switch(), other.Arity)
	}
}
