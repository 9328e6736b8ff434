// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bind

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/failure"
	"github.com/bureau-foundation/shellfn/lib/grammar"
	"github.com/bureau-foundation/shellfn/lib/invoke"
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Source records where a parameter's value came from.
type Source uint8

const (
	// Unbound parameters have no value.
	Unbound Source = iota
	// Explicit values came from command-line tokens.
	Explicit
	// Default values came from the function declaration.
	Default
	// Stdin values were routed from standard input.
	Stdin
)

// String returns the lowercase name of the source.
func (s Source) String() string {
	switch s {
	case Explicit:
		return "explicit"
	case Default:
		return "default"
	case Stdin:
		return "stdin"
	default:
		return "unbound"
	}
}

// Binder turns parsed command-line input into call arguments.
type Binder struct {
	// Coercer converts raw input. Nil means coerce.New().
	Coercer *coerce.Coercer

	// Stdin is standard input. It is read for non-stream parameters
	// and handed to stream parameters as "-".
	Stdin io.Reader

	// StdinAttached reports whether standard input carries data for
	// the call. See DetectStdin.
	StdinAttached bool

	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// Route decides the raw input for each parameter, in precedence
// order:
//
//  1. explicit command-line tokens;
//  2. the declared default, used without coercion;
//  3. standard input, when attached, for exactly one parameter: the
//     first unresolved stream-bearing parameter if there is one,
//     otherwise the first unresolved positional parameter;
//  4. anything else is missing, which is a failure naming every
//     missing parameter.
//
// The returned map holds raw input for explicit and stdin-routed
// parameters; defaulted parameters appear only in sources.
func (b *Binder) Route(g *grammar.Grammar, parsed *grammar.Parsed) (map[string]coerce.Raw, map[string]Source, error) {
	raw := make(map[string]coerce.Raw)
	sources := make(map[string]Source)
	var unresolved []*grammar.Slot
	for _, slot := range g.Slots {
		name := slot.Parameter.Name
		switch {
		case parsed.Bound(name):
			raw[name] = parsed.Values[name]
			sources[name] = Explicit
		case slot.Parameter.HasDefault:
			sources[name] = Default
		default:
			unresolved = append(unresolved, slot)
		}
	}

	if b.StdinAttached {
		if target := stdinTarget(unresolved); target != nil {
			value, err := b.readStdin(target)
			if err != nil {
				return nil, nil, err
			}
			raw[target.Parameter.Name] = value
			sources[target.Parameter.Name] = Stdin
			b.logger().Debug("routed stdin", "parameter", target.Parameter.Name)
		}
	}

	var missing []string
	for _, slot := range unresolved {
		if sources[slot.Parameter.Name] == Unbound {
			missing = append(missing, slot.Parameter.Name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, failure.MissingRequired(missing...)
	}
	return raw, sources, nil
}

// Bind routes and coerces every parameter.
func (b *Binder) Bind(g *grammar.Grammar, parsed *grammar.Parsed) (*invoke.Arguments, error) {
	raw, sources, err := b.Route(g, parsed)
	if err != nil {
		return nil, err
	}
	coercer := b.Coercer
	if coercer == nil {
		coercer = coerce.New()
	}

	args := invoke.NewArguments()
	for _, slot := range g.Slots {
		parameter := slot.Parameter
		switch sources[parameter.Name] {
		case Default:
			args.Set(parameter.Name, parameter.Default)
		case Explicit, Stdin:
			value, err := coerceParameter(coercer, slot, raw[parameter.Name])
			if err != nil {
				return nil, err
			}
			args.Set(parameter.Name, value)
		}
	}
	return args, nil
}

func coerceParameter(coercer *coerce.Coercer, slot *grammar.Slot, raw coerce.Raw) (any, error) {
	parameter := slot.Parameter
	declared := parameter.Type

	// Untyped parameters with a default coerce like the default's type
	// and keep the raw text when that fails.
	if declared.Tag == typedesc.TagUntyped && parameter.HasDefault {
		inferred := slot.Shape
		if inferred.Tag != typedesc.TagUntyped {
			if value, err := coercer.Coerce(raw, inferred); err == nil {
				return value, nil
			}
		}
		if raw.Multi {
			values := make([]any, len(raw.Values))
			for i, text := range raw.Values {
				values[i] = text
			}
			return values, nil
		}
		return raw.Text(), nil
	}

	value, err := coercer.Coerce(raw, declared)
	if err != nil {
		if declared.ContainsStream() {
			return nil, failure.IO(parameter.Name, err)
		}
		return nil, failure.Coercion(parameter.Name, declared.Summary(), err)
	}
	return value, nil
}

// stdinTarget picks the parameter that receives standard input. Only
// parameters still lacking a value are eligible, so a stream parameter
// already given on the command line does not claim stdin.
func stdinTarget(unresolved []*grammar.Slot) *grammar.Slot {
	hasStreams := false
	for _, slot := range unresolved {
		if slot.Parameter.Type.ContainsStream() {
			hasStreams = true
			break
		}
	}
	for _, slot := range unresolved {
		if hasStreams {
			if slot.Parameter.Type.ContainsStream() {
				return slot
			}
			continue
		}
		if slot.Positional() {
			return slot
		}
	}
	return nil
}

// readStdin builds the raw input that standard input supplies to
// target. Stream parameters get "-", wrapped in a single-element
// collection where the type is a collection. Other parameters read
// the whole input with trailing whitespace removed; collections take
// one element per line.
func (b *Binder) readStdin(target *grammar.Slot) (coerce.Raw, error) {
	name := target.Parameter.Name
	shape := target.Parameter.Type.NonNone()

	if shape.ContainsStream() {
		if n, ok := shape.FixedArity(); ok && n > 1 {
			return coerce.Raw{}, failure.IO(name, fmt.Errorf("standard input cannot fill %d stream slots", n))
		}
		if shape.IsCollection() {
			return coerce.Many(coerce.StdinPath), nil
		}
		return coerce.Single(coerce.StdinPath), nil
	}

	if b.Stdin == nil {
		return coerce.Raw{}, failure.IO(name, fmt.Errorf("standard input is not available"))
	}
	data, err := io.ReadAll(b.Stdin)
	if err != nil {
		return coerce.Raw{}, failure.IO(name, fmt.Errorf("reading standard input: %w", err))
	}
	text := strings.TrimRight(string(data), " \t\r\n")
	if target.Multi() {
		if text == "" {
			return coerce.Many(), nil
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
		return coerce.Many(lines...), nil
	}
	return coerce.Single(text), nil
}

func (b *Binder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
