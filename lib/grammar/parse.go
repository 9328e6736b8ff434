// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/failure"
	"github.com/bureau-foundation/shellfn/lib/suggest"
)

// Parsed is the result of matching command-line tokens against a
// grammar.
type Parsed struct {
	// Help is set when -h or --help was given. No other field is
	// meaningful then.
	Help bool

	// Values holds raw input for every parameter that received an
	// explicit value, keyed by parameter name. A greedy flag given with
	// no tokens is present with an empty Raw.
	Values map[string]coerce.Raw
}

// Bound reports whether the parameter received an explicit value.
func (p *Parsed) Bound(name string) bool {
	_, ok := p.Values[name]
	return ok
}

// Parse matches tokens against the grammar. Flags and positionals may
// be intermixed; "--" ends flag processing. A token that looks like a
// negative number is a positional unless it follows a flag that takes
// a value. Errors are parse failures.
func (g *Grammar) Parse(tokens []string) (*Parsed, error) {
	flagArgs, positionals, empty, err := g.split(tokens)
	if err != nil {
		return nil, err
	}

	flagSet, values := g.flagSet()
	if err := flagSet.Parse(flagArgs); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &Parsed{Help: true}, nil
		}
		return nil, g.flagError(err, flagArgs)
	}
	positionals = append(positionals, flagSet.Args()...)

	parsed := &Parsed{Values: make(map[string]coerce.Raw)}
	for _, slot := range g.Slots {
		if !slot.Flagged() {
			continue
		}
		value := values[slot.Long]
		switch {
		case value.set:
			parsed.Values[slot.Parameter.Name] = coerce.Raw{Values: value.values, Multi: slot.Multi()}
		case empty[slot.Long]:
			parsed.Values[slot.Parameter.Name] = coerce.Raw{Values: []string{}, Multi: true}
		}
	}

	if err := g.assignPositionals(parsed, positionals); err != nil {
		return nil, err
	}
	return parsed, nil
}

// split separates flag tokens, which go to pflag, from positional
// tokens. Flags that take values are rewritten to --name=value form so
// that pflag never has to guess whether a dash-prefixed token is a
// value. Greedy flags and fixed-arity tuple flags consume their values
// here. The returned set names greedy flags given with no values.
func (g *Grammar) split(tokens []string) (flagArgs, positionals []string, empty map[string]bool, err error) {
	empty = make(map[string]bool)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "--" {
			positionals = append(positionals, tokens[i+1:]...)
			break
		}
		if !isFlagLike(token) {
			positionals = append(positionals, token)
			continue
		}

		slot, hasValue := g.lookupToken(token)
		if slot == nil || hasValue || slot.Switch() {
			flagArgs = append(flagArgs, token)
			continue
		}

		name := "--" + slot.Long
		switch {
		case slot.Greedy:
			taken := 0
			for i+1 < len(tokens) && tokens[i+1] != "--" && !isFlagLike(tokens[i+1]) {
				i++
				taken++
				flagArgs = append(flagArgs, name+"="+tokens[i])
			}
			if taken == 0 {
				empty[slot.Long] = true
			}
		default:
			if i+slot.Arity >= len(tokens) {
				if slot.Arity == 1 {
					return nil, nil, nil, failure.Parse("argument %s: expected one argument", name)
				}
				return nil, nil, nil, failure.Parse("argument %s: expected %d arguments", name, slot.Arity)
			}
			for range slot.Arity {
				i++
				flagArgs = append(flagArgs, name+"="+tokens[i])
			}
		}
	}
	return flagArgs, positionals, empty, nil
}

// lookupToken resolves a flag token to its slot. hasValue reports an
// attached value (--name=value or -xvalue).
func (g *Grammar) lookupToken(token string) (slot *Slot, hasValue bool) {
	if long, ok := strings.CutPrefix(token, "--"); ok {
		name, _, found := strings.Cut(long, "=")
		slot = g.byLong[name]
		if slot != nil && name == slot.Negated {
			// The negated form never takes a value token.
			return slot, true
		}
		return slot, found
	}
	short := token[1:]
	if short == "" {
		return nil, false
	}
	for _, candidate := range g.Slots {
		if candidate.Short != "" && candidate.Short == short[:1] {
			return candidate, len(short) > 1
		}
	}
	return nil, false
}

// flagSet builds a pflag set with one raw collector per flagged slot.
func (g *Grammar) flagSet() (*pflag.FlagSet, map[string]*rawValue) {
	flagSet := pflag.NewFlagSet(g.Function.Name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(true)

	values := make(map[string]*rawValue)
	for _, slot := range g.Slots {
		if !slot.Flagged() {
			continue
		}
		value := &rawValue{accumulate: slot.Multi(), kind: slot.Parameter.Type.Summary()}
		values[slot.Long] = value
		flag := flagSet.VarPF(value, slot.Long, slot.Short, "")
		if slot.Switch() {
			flag.NoOptDefVal = "true"
			negated := flagSet.VarPF(&negatedValue{target: value}, slot.Negated, "", "")
			negated.NoOptDefVal = "true"
		}
	}
	return flagSet, values
}

func (g *Grammar) flagError(err error, flagArgs []string) error {
	message := err.Error()
	if !strings.Contains(message, "unknown") {
		return failure.Parse("%s", message)
	}
	var known []string
	for long := range g.byLong {
		known = append(known, long)
	}
	// Map iteration order must not decide ties.
	slices.Sort(known)
	for _, arg := range flagArgs {
		name, ok := strings.CutPrefix(arg, "--")
		if !ok {
			continue
		}
		name, _, _ = strings.Cut(name, "=")
		if _, exists := g.byLong[name]; exists {
			continue
		}
		if suggestion := suggest.Closest(name, known); suggestion != "" {
			return failure.Parse("%s (did you mean --%s?)", message, suggestion)
		}
		break
	}
	return failure.Parse("%s", message)
}

// assignPositionals fills positional slots in order: positional-only
// parameters, then positional-or-keyword parameters not already given
// by flag. A greedy slot leaves enough tokens for the required slots
// after it. Tokens left over are an error.
func (g *Grammar) assignPositionals(parsed *Parsed, tokens []string) error {
	var open []*Slot
	for _, slot := range g.Slots {
		if slot.Positional() && !parsed.Bound(slot.Parameter.Name) {
			open = append(open, slot)
		}
	}

	for index, slot := range open {
		if len(tokens) == 0 {
			break
		}
		take := slot.Arity
		if slot.Greedy {
			reserved := 0
			for _, later := range open[index+1:] {
				if later.Parameter.Required() {
					reserved += max(later.Arity, 1)
				}
			}
			take = max(len(tokens)-reserved, 0)
			if take == 0 {
				continue
			}
		}
		take = min(take, len(tokens))
		parsed.Values[slot.Parameter.Name] = coerce.Raw{
			Values: append([]string(nil), tokens[:take]...),
			Multi:  slot.Multi(),
		}
		tokens = tokens[take:]
	}

	if len(tokens) > 0 {
		return failure.Parse("unrecognized arguments: %s", strings.Join(tokens, " "))
	}
	return nil
}

// isFlagLike reports whether a token is a flag rather than a value:
// it starts with a dash, is not a lone dash, and is not a number.
func isFlagLike(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(token, 64); err == nil {
		return false
	}
	return true
}

// rawValue collects flag occurrences without interpreting them.
// Coercion happens later, against the declared type.
type rawValue struct {
	values     []string
	set        bool
	accumulate bool
	kind       string
}

func (v *rawValue) Set(text string) error {
	if v.accumulate {
		v.values = append(v.values, text)
	} else {
		v.values = []string{text}
	}
	v.set = true
	return nil
}

func (v *rawValue) String() string { return strings.Join(v.values, " ") }

func (v *rawValue) Type() string {
	if v.kind == "" {
		return "value"
	}
	return v.kind
}

// negatedValue backs --no-<name>: it stores the inverse into the
// positive flag's collector.
type negatedValue struct {
	target *rawValue
}

func (v *negatedValue) Set(text string) error {
	switch {
	case strings.EqualFold(text, "true"):
		return v.target.Set("false")
	case strings.EqualFold(text, "false"):
		return v.target.Set("true")
	}
	return fmt.Errorf("invalid bool value: '%s' (choose from true, false)", text)
}

func (v *negatedValue) String() string { return "" }

func (v *negatedValue) Type() string { return "bool" }
