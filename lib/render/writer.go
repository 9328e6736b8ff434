// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/invoke"
)

// Format selects how results are written.
type Format string

const (
	// FormatShell writes shell text: scalars bare, sequences and
	// mappings as bash array literals.
	FormatShell Format = "shell"

	// FormatJSON writes one JSON document per line.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string is
// FormatShell.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatShell:
		return FormatShell, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected shell or json)", name)
	}
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Writer renders results to an output stream.
type Writer struct {
	out    io.Writer
	format Format
}

// NewWriter returns a Writer producing format on out.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format}
}

// Result writes a call result. A lazy result is drained here, one
// element at a time.
func (w *Writer) Result(ctx context.Context, result invoke.Result) error {
	if result.Lazy() {
		return w.Sequence(ctx, result.Sequence)
	}
	return w.Value(result.Value)
}

// Value writes one value followed by a newline and flushes. A nil
// value writes nothing in shell format and "null" in JSON format. A
// nested Sequence is drained as if it had been returned directly.
func (w *Writer) Value(value any) error {
	if sequence, ok := value.(invoke.Sequence); ok {
		defer sequence.Close()
		return w.Sequence(context.Background(), sequence)
	}

	var line []byte
	switch w.format {
	case FormatJSON:
		data, err := marshalJSON(value)
		if err != nil {
			return fmt.Errorf("encoding result as JSON: %w", err)
		}
		line = data
	default:
		if value == nil {
			return nil
		}
		line = []byte(Text(value))
	}
	if !bytes.HasSuffix(line, []byte("\n")) {
		line = append(line, '\n')
	}
	if _, err := w.out.Write(line); err != nil {
		return err
	}
	if f, ok := w.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Sequence drains seq, writing and flushing each element before
// pulling the next. It stops at the first producer or write error.
func (w *Writer) Sequence(ctx context.Context, seq invoke.Sequence) error {
	for {
		value, ok, err := seq.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := w.Value(value); err != nil {
			return err
		}
	}
}

func marshalJSON(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(jsonValue(value)); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// jsonValue converts coerced value types to JSON-friendly forms:
// dates and times as strings, byte strings as text, sets and tuples
// as arrays.
func jsonValue(value any) any {
	switch v := value.(type) {
	case coerce.Date, coerce.TimeOfDay, time.Duration, *coerce.Stream:
		return Text(v)
	case []byte:
		return string(v)
	case coerce.Tuple:
		return jsonValue([]any(v))
	case coerce.Set:
		return jsonValue([]any(v))
	case []any:
		converted := make([]any, len(v))
		for i, element := range v {
			converted[i] = jsonValue(element)
		}
		return converted
	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, element := range v {
			converted[key] = jsonValue(element)
		}
		return converted
	case error:
		return v.Error()
	case json.Marshaler, encoding.TextMarshaler:
		return value
	case fmt.Stringer:
		return v.String()
	}
	return value
}
