// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"fmt"
	"net/netip"
	"net/url"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// registerBuiltins installs constructors for commonly annotated
// library types.
func registerBuiltins(c *Coercer) {
	c.Register("Pattern", func(text string) (any, error) {
		return regexp.Compile(text)
	})
	c.Register("Path", func(text string) (any, error) {
		return filepath.Clean(text), nil
	})
	c.Register("PurePath", func(text string) (any, error) {
		return filepath.Clean(text), nil
	})
	c.Register("Duration", func(text string) (any, error) {
		return time.ParseDuration(text)
	})
	c.Register("timedelta", func(text string) (any, error) {
		return time.ParseDuration(text)
	})
	c.Register("URL", func(text string) (any, error) {
		parsed, err := url.Parse(text)
		if err != nil {
			return nil, err
		}
		if parsed.Scheme == "" {
			return nil, fmt.Errorf("missing scheme")
		}
		return parsed, nil
	})
	c.Register("UUID", func(text string) (any, error) {
		return uuid.Parse(text)
	})
	c.Register("IPAddress", func(text string) (any, error) {
		return netip.ParseAddr(text)
	})
}
