// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

func (c *Coercer) coerceCollection(raw Raw, t *typedesc.Type) (any, error) {
	tokens := raw.Values

	// A single token for a concrete list or dict is first tried as
	// JSON. A decoded value of the wrong shape falls through to the
	// token rules below.
	if t.Container.AcceptsJSON() && len(tokens) == 1 {
		if decoded, err := DecodeJSON([]byte(tokens[0])); err == nil {
			switch value := decoded.(type) {
			case []any:
				if t.Container == typedesc.List {
					return value, nil
				}
			case map[string]any:
				if t.Container == typedesc.Dict {
					return value, nil
				}
			}
		}
	}

	if t.Container.IsMapping() {
		return c.coerceMapping(tokens, t)
	}

	if t.Container == typedesc.Tuple && !t.Variadic && len(t.Elements) > 0 {
		if len(tokens) != len(t.Elements) {
			return nil, fmt.Errorf("expected %d values, got %d", len(t.Elements), len(tokens))
		}
		values := make(Tuple, len(tokens))
		for i, token := range tokens {
			value, err := c.Coerce(Single(token), t.Elements[i])
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}

	values := make([]any, len(tokens))
	for i, token := range tokens {
		if len(t.Elements) == 0 {
			values[i] = token
			continue
		}
		value, err := c.Coerce(Single(token), t.Elements[0])
		if err != nil {
			return nil, err
		}
		values[i] = value
	}

	switch t.Container {
	case typedesc.Tuple:
		return Tuple(values), nil
	case typedesc.Set:
		return Set(dedupe(values)), nil
	case typedesc.AbstractSet:
		return dedupe(values), nil
	default:
		return values, nil
	}
}

// coerceMapping reads key=value tokens. Keys are checked against the
// declared key type but stored as written; values are coerced against
// the value type.
func (c *Coercer) coerceMapping(tokens []string, t *typedesc.Type) (any, error) {
	result := make(map[string]any, len(tokens))
	for _, token := range tokens {
		key, text, found := strings.Cut(token, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid mapping entry %s (expected key=value)", quote(token))
		}
		if len(t.Elements) != 2 {
			result[key] = text
			continue
		}
		if _, err := c.Coerce(Single(key), t.Elements[0]); err != nil {
			return nil, fmt.Errorf("key %s: %w", quote(key), err)
		}
		value, err := c.Coerce(Single(text), t.Elements[1])
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", quote(key), err)
		}
		result[key] = value
	}
	return result, nil
}
