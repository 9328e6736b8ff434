// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Slot is the command-line shape of one parameter.
type Slot struct {
	Parameter funcspec.Parameter

	// Long is the flag name without dashes. Empty for positional-only
	// parameters, which have no flag form.
	Long string

	// Short is the single-letter flag, or empty when the first letter
	// is shared with another flag.
	Short string

	// Negated is "no-<long>" for boolean flags, empty otherwise.
	Negated string

	// Greedy slots take any number of tokens: collections other than
	// fixed-arity tuples.
	Greedy bool

	// Arity is the token count of one occurrence of a non-greedy slot.
	Arity int

	// Shape is the type that decides how many tokens the slot takes:
	// the declared type, or for an untyped parameter the type implied
	// by its default.
	Shape *typedesc.Type
}

// Positional reports whether the slot can be filled by position.
func (s *Slot) Positional() bool { return s.Parameter.Positional() }

// Flagged reports whether the slot has a flag form.
func (s *Slot) Flagged() bool { return s.Long != "" }

// Switch reports whether the flag form takes no value token.
func (s *Slot) Switch() bool { return s.Negated != "" }

// Multi reports whether the slot gathers collection-shaped input.
func (s *Slot) Multi() bool { return s.Shape.IsCollection() }

// Grammar is the command-line grammar synthesized from a function.
type Grammar struct {
	// Function is the normalized function: nil types replaced by
	// Untyped and parameters ordered by kind.
	Function *funcspec.Function

	// Slots are in parameter order.
	Slots []*Slot

	// Reordered is set when the function's parameters were out of kind
	// order and had to be sorted.
	Reordered bool

	byLong map[string]*Slot
}

// Synthesize builds the grammar for f. Positional-only parameters
// become positionals, positional-or-keyword parameters become both a
// positional and a flag, keyword-only parameters become flags. Boolean
// flags also get a --no- form.
func Synthesize(f *funcspec.Function) (*Grammar, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	normalized, reordered := f.Normalize()

	g := &Grammar{
		Function:  normalized,
		Reordered: reordered,
		byLong:    make(map[string]*Slot),
	}

	initials := make(map[string]int)
	for _, parameter := range normalized.Parameters {
		slot := &Slot{Parameter: parameter, Arity: 1, Shape: shapeOf(parameter)}
		if n, ok := slot.Shape.FixedArity(); ok {
			slot.Arity = n
		} else if slot.Shape.IsCollection() {
			slot.Greedy = true
			slot.Arity = 0
		}

		if parameter.Kind != funcspec.PositionalOnly {
			slot.Long = flagName(parameter.Name)
			if slot.Long == "" {
				return nil, fmt.Errorf("function %s: parameter %s has no letters or digits to name a flag", f.Name, parameter.Name)
			}
			if slot.Long == "help" {
				return nil, fmt.Errorf("function %s: parameter %s: flag --help is reserved", f.Name, parameter.Name)
			}
			if err := g.claim(slot.Long, slot); err != nil {
				return nil, fmt.Errorf("function %s: %w", f.Name, err)
			}
			if slot.Shape.IsBool() {
				slot.Negated = "no-" + slot.Long
				if err := g.claim(slot.Negated, slot); err != nil {
					return nil, fmt.Errorf("function %s: %w", f.Name, err)
				}
			}
			initials[initial(slot.Long)]++
		}
		g.Slots = append(g.Slots, slot)
	}

	for _, slot := range g.Slots {
		if !slot.Flagged() {
			continue
		}
		letter := initial(slot.Long)
		if letter == "" || letter == "h" || initials[letter] != 1 {
			continue
		}
		slot.Short = letter
	}
	return g, nil
}

// Slot returns the slot for a parameter name.
func (g *Grammar) Slot(name string) (*Slot, bool) {
	for _, slot := range g.Slots {
		if slot.Parameter.Name == name {
			return slot, true
		}
	}
	return nil, false
}

func shapeOf(parameter funcspec.Parameter) *typedesc.Type {
	if parameter.Type.Tag == typedesc.TagUntyped && parameter.HasDefault {
		return coerce.Infer(parameter.Default)
	}
	return parameter.Type
}

func (g *Grammar) claim(long string, slot *Slot) error {
	if other, exists := g.byLong[long]; exists {
		return fmt.Errorf("parameters %s and %s both map to flag --%s", other.Parameter.Name, slot.Parameter.Name, long)
	}
	g.byLong[long] = slot
	return nil
}

// flagName replaces every character that is not a letter or digit
// with a dash, then trims dashes from both ends so the result is a
// valid long flag.
func flagName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, name)
	return strings.Trim(mapped, "-")
}

func initial(long string) string {
	for _, r := range long {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return string(r)
		}
		return ""
	}
	return ""
}
