// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"reflect"
	"strings"
)

// Declare renders a global shell variable declaration for value:
//
//	declare -g -i count
//	count=3
//
// Integers are declared -i, sequences -a, mappings -A. Strings and
// other scalars are double-quoted; nil assigns the empty string.
func Declare(name string, value any) string {
	var attribute, assigned string
	switch value.(type) {
	case nil:
		assigned = ""
	case bool, float64, float32:
		assigned = Text(value)
	case string, []byte:
		assigned = Quote(Text(value))
	default:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			attribute = "-i"
			assigned = Text(value)
		case reflect.Slice, reflect.Array:
			attribute = "-a"
			assigned = Text(value)
		case reflect.Map:
			attribute = "-A"
			assigned = Text(value)
		default:
			assigned = Quote(Text(value))
		}
	}

	var b strings.Builder
	b.WriteString("declare -g ")
	if attribute != "" {
		b.WriteString(attribute)
		b.WriteString(" ")
	}
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(name)
	b.WriteString("=")
	b.WriteString(assigned)
	b.WriteString("\n")
	return b.String()
}
