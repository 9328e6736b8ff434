// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typedesc

import (
	"strconv"
	"strings"
)

// String returns the canonical type expression for t. The result
// parses back to an equivalent descriptor.
func (t *Type) String() string {
	switch t.Tag {
	case TagUntyped:
		return "Any"
	case TagNone:
		return "None"
	case TagPrimitive:
		return t.Primitive.String()
	case TagCollection:
		if len(t.Elements) == 0 {
			return t.Container.String()
		}
		parts := make([]string, 0, len(t.Elements)+1)
		for _, element := range t.Elements {
			parts = append(parts, element.String())
		}
		if t.Variadic {
			parts = append(parts, "...")
		}
		return t.Container.String() + "[" + strings.Join(parts, ", ") + "]"
	case TagUnion:
		parts := make([]string, len(t.Members))
		for i, member := range t.Members {
			parts[i] = member.String()
		}
		return strings.Join(parts, " | ")
	case TagLiteral:
		return "Literal[" + FormatLiterals(t.Literals) + "]"
	case TagStream:
		if t.Mode == Binary {
			return "BinaryIO"
		}
		return "TextIO"
	case TagDateTime:
		return t.Time.String()
	case TagUnknown:
		return t.Name
	default:
		return t.Tag.String()
	}
}

// Summary returns the short human-readable type name shown in help
// output. Unions drop the none marker and join members with " | ";
// literals list their values; streams read "file / stdin", or
// "file(s) / stdin" inside a collection. Untyped parameters have an
// empty summary.
func (t *Type) Summary() string {
	switch t.Tag {
	case TagUntyped:
		return ""
	case TagStream:
		return "file / stdin"
	case TagLiteral:
		return FormatLiterals(t.Literals)
	case TagUnion:
		var parts []string
		for _, member := range t.Members {
			if member.Tag == TagNone {
				continue
			}
			parts = append(parts, member.Summary())
		}
		return strings.Join(parts, " | ")
	case TagCollection:
		if t.ContainsStream() {
			return "file(s) / stdin"
		}
		return t.String()
	default:
		return t.String()
	}
}

// FormatLiterals renders literal values as a comma-separated list:
// strings single-quoted, booleans as True/False.
func FormatLiterals(values []any) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = formatLiteral(value)
	}
	return strings.Join(parts, ", ")
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case string:
		escaped := strings.ReplaceAll(v, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		return "'" + escaped + "'"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		text := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eEn") {
			text += ".0"
		}
		return text
	default:
		return "?"
	}
}
