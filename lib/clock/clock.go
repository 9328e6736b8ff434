// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the current time for testability. Production code
// injects Real(); tests inject Fake() and move time explicitly.
//
// Code that ages cache entries or times invocations takes a Clock
// instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// OrReal returns c, or Real() when c is nil. Structs with an optional
// Clock field use it so their zero value works.
func OrReal(c Clock) Clock {
	if c == nil {
		return Real()
	}
	return c
}
