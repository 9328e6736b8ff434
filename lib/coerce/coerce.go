// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Raw is the uncoerced input for one parameter: the token or tokens
// the command line (or stdin) supplied.
type Raw struct {
	// Values are the tokens in order. Scalar slots hold exactly one.
	Values []string

	// Multi marks input gathered by a collection-shaped slot. A scalar
	// union member receiving multi input accepts it only when it holds
	// a single token.
	Multi bool
}

// Single returns scalar raw input.
func Single(value string) Raw { return Raw{Values: []string{value}} }

// Many returns collection-shaped raw input.
func Many(values ...string) Raw { return Raw{Values: values, Multi: true} }

// Text joins the tokens with spaces. Used in error messages and as the
// untyped fallback.
func (r Raw) Text() string { return strings.Join(r.Values, " ") }

// Constructor builds a value of a named type from its textual form.
type Constructor func(text string) (any, error)

// Coercer converts raw command-line input into typed values. The zero
// value has no constructors for unknown types; use [New] for the
// built-in set.
//
// Coercion never mutates the Coercer or the input, so one Coercer
// serves any number of parameters.
type Coercer struct {
	// Constructors resolve TagUnknown descriptors by type name.
	Constructors map[string]Constructor

	// Stat checks stream paths. Nil means os.Stat.
	Stat func(path string) (fs.FileInfo, error)
}

// New returns a Coercer with the built-in constructors registered.
func New() *Coercer {
	c := &Coercer{Constructors: make(map[string]Constructor)}
	registerBuiltins(c)
	return c
}

// Register adds or replaces the constructor for a type name.
func (c *Coercer) Register(name string, constructor Constructor) {
	if c.Constructors == nil {
		c.Constructors = make(map[string]Constructor)
	}
	c.Constructors[name] = constructor
}

// Coerce converts raw to a value of type t.
//
// Result types by descriptor: int → int64, float → float64, bool →
// bool, str → string, bytes → []byte; list and abstract containers →
// []any; set → Set; tuple → Tuple; mappings → map[string]any; date →
// Date; datetime → time.Time; time → TimeOfDay; stream → *Stream;
// unknown → whatever the constructor returns.
func (c *Coercer) Coerce(raw Raw, t *typedesc.Type) (any, error) {
	switch t.Tag {
	case typedesc.TagUntyped:
		return coerceUntyped(raw), nil
	case typedesc.TagNone:
		return nil, fmt.Errorf("no value is accepted for None")
	case typedesc.TagPrimitive:
		text, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		return coercePrimitive(text, t.Primitive)
	case typedesc.TagCollection:
		return c.coerceCollection(raw, t)
	case typedesc.TagUnion:
		return c.coerceUnion(raw, t)
	case typedesc.TagLiteral:
		text, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		return coerceLiteral(text, t.Literals)
	case typedesc.TagStream:
		text, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		return c.coerceStream(text, t.Mode)
	case typedesc.TagDateTime:
		text, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		return coerceTemporal(text, t.Time)
	case typedesc.TagUnknown:
		text, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		return c.coerceUnknown(text, t.Name)
	default:
		return nil, fmt.Errorf("unsupported type tag %s", t.Tag)
	}
}

// Infer returns the descriptor implied by a default value's Go type,
// or Untyped when the default gives no hint.
func Infer(value any) *typedesc.Type {
	switch value.(type) {
	case int64, int:
		return typedesc.Of(typedesc.Int)
	case float64:
		return typedesc.Of(typedesc.Float)
	case bool:
		return typedesc.Of(typedesc.Bool)
	case string:
		return typedesc.Of(typedesc.Str)
	case []byte:
		return typedesc.Of(typedesc.Bytes)
	case []any:
		return typedesc.Collection(typedesc.List)
	case map[string]any:
		return typedesc.Collection(typedesc.Dict)
	default:
		return typedesc.Untyped()
	}
}

func scalar(raw Raw) (string, error) {
	if len(raw.Values) != 1 {
		return "", fmt.Errorf("expected one value, got %d", len(raw.Values))
	}
	return raw.Values[0], nil
}

func quote(text string) string { return "'" + text + "'" }

func coercePrimitive(text string, kind typedesc.Primitive) (any, error) {
	switch kind {
	case typedesc.Int:
		value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int value: %s", quote(text))
		}
		return value, nil
	case typedesc.Float:
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value: %s", quote(text))
		}
		return value, nil
	case typedesc.Bool:
		switch {
		case strings.EqualFold(text, "true"):
			return true, nil
		case strings.EqualFold(text, "false"):
			return false, nil
		}
		return nil, fmt.Errorf("invalid bool value: %s (choose from true, false)", quote(text))
	case typedesc.Str:
		return text, nil
	case typedesc.Bytes:
		return []byte(text), nil
	default:
		return nil, fmt.Errorf("unsupported primitive %s", kind)
	}
}

// coerceUntyped applies the heuristics for parameters with no declared
// type and no default: "true"/"false" are booleans, all-digit strings
// are integers, everything else stays a string.
func coerceUntyped(raw Raw) any {
	if len(raw.Values) == 1 && !raw.Multi {
		return guess(raw.Values[0])
	}
	values := make([]any, len(raw.Values))
	for i, text := range raw.Values {
		values[i] = guess(text)
	}
	return values
}

func guess(text string) any {
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	if isDecimal(text) {
		if value, err := strconv.ParseInt(text, 10, 64); err == nil {
			return value
		}
	}
	return text
}

func isDecimal(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (c *Coercer) coerceUnion(raw Raw, t *typedesc.Type) (any, error) {
	// When int and float are both members, the presence of a decimal
	// point decides between them regardless of member order.
	numeric := t.Has(typedesc.Int) && t.Has(typedesc.Float)
	var text string
	if len(raw.Values) == 1 {
		text = raw.Values[0]
	}

	for _, member := range t.Members {
		if member.Tag == typedesc.TagNone {
			continue
		}
		input := raw
		if raw.Multi && !member.IsCollection() {
			if len(raw.Values) != 1 {
				continue
			}
			input = Single(raw.Values[0])
		}
		if numeric && member.Tag == typedesc.TagPrimitive {
			switch member.Primitive {
			case typedesc.Int:
				if strings.Contains(text, ".") {
					continue
				}
			case typedesc.Float:
				if !strings.Contains(text, ".") && looksInteger(text) {
					continue
				}
			}
		}
		if value, err := c.Coerce(input, member); err == nil {
			return value, nil
		}
	}
	return nil, fmt.Errorf("invalid value %s (expected %s)", quote(raw.Text()), t.Summary())
}

func looksInteger(text string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	return err == nil
}

func coerceLiteral(text string, allowed []any) (any, error) {
	for _, candidate := range allowed {
		switch value := candidate.(type) {
		case string:
			if text == value {
				return value, nil
			}
		case int64:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil && parsed == value {
				return value, nil
			}
		case float64:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil && parsed == value {
				return value, nil
			}
		case bool:
			if parsed, err := coercePrimitive(text, typedesc.Bool); err == nil && parsed == value {
				return value, nil
			}
		}
	}
	return nil, fmt.Errorf("invalid choice: %s (choose from %s)", quote(text), typedesc.FormatLiterals(allowed))
}

func (c *Coercer) coerceStream(text string, mode typedesc.StreamMode) (any, error) {
	if text == StdinPath {
		return &Stream{Path: StdinPath, Mode: mode}, nil
	}
	stat := c.Stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(text)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("can't open %s: no such file or directory", quote(text))
		}
		return nil, fmt.Errorf("can't open %s: %w", quote(text), err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("can't open %s: is a directory", quote(text))
	}
	return &Stream{Path: text, Mode: mode}, nil
}

func (c *Coercer) coerceUnknown(text, name string) (any, error) {
	constructor, ok := c.Constructors[name]
	if !ok {
		return nil, fmt.Errorf("no constructor registered for type %s", name)
	}
	value, err := constructor(text)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s: %w", name, quote(text), err)
	}
	return value, nil
}
