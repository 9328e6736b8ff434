// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON decodes a single JSON value. Integral numbers become
// int64 and other numbers float64, matching the types that int and
// float coercion produce. Trailing data after the value is an error.
func DecodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return normalizeNumbers(value), nil
}

func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if integer, err := v.Int64(); err == nil {
			return integer
		}
		if number, err := v.Float64(); err == nil {
			return number
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normalizeNumbers(v[i])
		}
		return v
	case map[string]any:
		for key := range v {
			v[key] = normalizeNumbers(v[key])
		}
		return v
	default:
		return value
	}
}
