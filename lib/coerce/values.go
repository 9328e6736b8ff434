// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// Tuple is the coerced value of a tuple-typed parameter: an ordered,
// fixed sequence whose positions may have different types.
type Tuple []any

// Set is the coerced value of a set-typed parameter. Elements are
// unique and keep the order in which they first appeared on the command
// line.
type Set []any

// Contains reports whether value is an element of s.
func (s Set) Contains(value any) bool {
	for _, element := range s {
		if sameElement(element, value) {
			return true
		}
	}
	return false
}

// setKey maps a coerced value to a comparable map key. ok is false for
// values that cannot be hashed, such as the slices or maps a
// registered constructor may return.
func setKey(value any) (key any, ok bool) {
	if b, isBytes := value.([]byte); isBytes {
		return "bytes:" + string(b), true
	}
	if value != nil && !reflect.TypeOf(value).Comparable() {
		return nil, false
	}
	return value, true
}

func sameElement(a, b any) bool {
	keyA, okA := setKey(a)
	keyB, okB := setKey(b)
	if okA && okB {
		return keyA == keyB
	}
	return reflect.DeepEqual(a, b)
}

// dedupe returns values with later duplicates removed. Hashable values
// are tracked in a map; the rest are compared with reflect.DeepEqual.
func dedupe(values []any) []any {
	seen := make(map[any]bool, len(values))
	var opaque []any
	unique := make([]any, 0, len(values))
	for _, value := range values {
		key, ok := setKey(value)
		if ok {
			if seen[key] {
				continue
			}
			seen[key] = true
		} else {
			if slices.ContainsFunc(opaque, func(other any) bool { return reflect.DeepEqual(other, value) }) {
				continue
			}
			opaque = append(opaque, value)
		}
		unique = append(unique, value)
	}
	return unique
}

// Date is a calendar date with no time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// TimeOfDay is a wall-clock time with no date or zone.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// TimeOfDayOf returns the wall-clock time of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// String formats the time as HH:MM:SS, with a fractional part only
// when it is non-zero.
func (t TimeOfDay) String() string {
	text := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		fraction := strings.TrimRight(fmt.Sprintf("%09d", t.Nanosecond), "0")
		text += "." + fraction
	}
	return text
}
