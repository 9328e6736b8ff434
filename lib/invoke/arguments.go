// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"github.com/bureau-foundation/shellfn/lib/coerce"
)

// Arguments are the coerced values bound to a function's parameters.
// Every parameter that has a value (explicit, default, or routed from
// stdin) is present, including parameters whose value is nil.
type Arguments struct {
	names  []string
	values map[string]any
}

// NewArguments returns an empty argument set.
func NewArguments() *Arguments {
	return &Arguments{values: make(map[string]any)}
}

// Set binds name to value. Rebinding keeps the original position.
func (a *Arguments) Set(name string, value any) {
	if _, exists := a.values[name]; !exists {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Names returns parameter names in binding order.
func (a *Arguments) Names() []string { return a.names }

// Lookup returns the value bound to name.
func (a *Arguments) Lookup(name string) (any, bool) {
	value, ok := a.values[name]
	return value, ok
}

// Value returns the value bound to name, or nil.
func (a *Arguments) Value(name string) any { return a.values[name] }

// Int returns an integer argument, or 0 when absent or not an int.
func (a *Arguments) Int(name string) int64 {
	value, _ := a.values[name].(int64)
	return value
}

// Float returns a float argument. Integer values are widened.
func (a *Arguments) Float(name string) float64 {
	switch value := a.values[name].(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	}
	return 0
}

// Bool returns a boolean argument, or false.
func (a *Arguments) Bool(name string) bool {
	value, _ := a.values[name].(bool)
	return value
}

// String returns a string argument, or "".
func (a *Arguments) String(name string) string {
	value, _ := a.values[name].(string)
	return value
}

// List returns the elements of a sequence-shaped argument: a list,
// tuple, or set. Other values yield nil.
func (a *Arguments) List(name string) []any {
	switch value := a.values[name].(type) {
	case []any:
		return value
	case coerce.Tuple:
		return value
	case coerce.Set:
		return value
	}
	return nil
}

// Stream returns a stream argument, or nil.
func (a *Arguments) Stream(name string) *coerce.Stream {
	value, _ := a.values[name].(*coerce.Stream)
	return value
}

// Streams returns the streams held by a stream-valued argument, either
// a single stream or a collection of them.
func (a *Arguments) Streams(name string) []*coerce.Stream {
	return streamsIn(a.values[name])
}

func streamsIn(value any) []*coerce.Stream {
	switch v := value.(type) {
	case *coerce.Stream:
		return []*coerce.Stream{v}
	case []any:
		return streamsOf(v)
	case coerce.Tuple:
		return streamsOf(v)
	case coerce.Set:
		return streamsOf(v)
	}
	return nil
}

func streamsOf(values []any) []*coerce.Stream {
	var streams []*coerce.Stream
	for _, value := range values {
		if stream, ok := value.(*coerce.Stream); ok {
			streams = append(streams, stream)
		}
	}
	return streams
}
