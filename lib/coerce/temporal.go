// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

var (
	dateLayouts = []string{"2006-01-02", "20060102"}

	dateTimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	timeLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04", "15"}
)

// coerceTemporal parses ISO-8601 text first and falls back to an
// integer Unix timestamp for dates and datetimes. Values without a
// zone are interpreted in the local zone.
func coerceTemporal(text string, kind typedesc.TimeKind) (any, error) {
	switch kind {
	case typedesc.Date:
		for _, layout := range dateLayouts {
			if parsed, err := time.ParseInLocation(layout, text, time.Local); err == nil {
				return DateOf(parsed), nil
			}
		}
		if stamp, ok := timestamp(text); ok {
			return DateOf(stamp), nil
		}
	case typedesc.DateTime:
		for _, layout := range dateTimeLayouts {
			if parsed, err := time.ParseInLocation(layout, text, time.Local); err == nil {
				return parsed, nil
			}
		}
		if stamp, ok := timestamp(text); ok {
			return stamp, nil
		}
	case typedesc.TimeOfDay:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, text); err == nil {
				return TimeOfDayOf(parsed), nil
			}
		}
	}
	return nil, fmt.Errorf("invalid %s value: %s", kind, quote(text))
}

func timestamp(text string) (time.Time, bool) {
	if !isDecimal(text) {
		return time.Time{}, false
	}
	seconds, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(seconds, 0), true
}
