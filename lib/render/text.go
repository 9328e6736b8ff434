// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/shellfn/lib/coerce"
)

// Text renders a value in its top-level shell form, without a trailing
// newline. Strings are written as is; sequences and mappings become
// bash array and associative array literals whose elements are
// rendered with [Word].
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case coerce.Date:
		return v.String()
	case coerce.TimeOfDay:
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(reflected.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(reflected.Uint(), 10)
	case reflect.String:
		return reflected.String()
	case reflect.Slice, reflect.Array:
		words := make([]string, reflected.Len())
		for i := range words {
			words[i] = Word(reflected.Index(i).Interface())
		}
		return "(" + strings.Join(words, " ") + ")"
	case reflect.Map:
		return associative(reflected)
	case reflect.Pointer:
		if reflected.IsNil() {
			return ""
		}
		return Text(reflected.Elem().Interface())
	case reflect.Struct:
		if data, err := json.Marshal(value); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(value)
}

// Word renders a value as one element of a bash array: numbers and
// booleans bare, everything else double-quoted.
func Word(value any) string {
	switch v := value.(type) {
	case nil:
		return `""`
	case bool:
		return strconv.FormatBool(v)
	case float64, float32:
		return Text(v)
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Text(value)
	}
	return Quote(Text(value))
}

// Quote wraps text in double quotes, escaping the characters that
// stay special inside them.
func Quote(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// associative renders a map as ([key]=value ...) with keys sorted by
// their rendered form.
func associative(m reflect.Value) string {
	type entry struct{ key, value string }
	entries := make([]entry, 0, m.Len())
	iterator := m.MapRange()
	for iterator.Next() {
		entries = append(entries, entry{
			key:   Word(iterator.Key().Interface()),
			value: Word(iterator.Value().Interface()),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = "[" + e.key + "]=" + e.value
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// formatFloat always shows a fractional part or an exponent, so a
// float never reads back as an integer. Exponents are used below 1e-4
// and from 1e16.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	magnitude := math.Abs(v)
	if magnitude != 0 && (magnitude < 1e-4 || magnitude >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(text, ".") {
		text += ".0"
	}
	return text
}
