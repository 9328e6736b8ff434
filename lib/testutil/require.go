// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"time"
)

// Fataler is the part of testing.TB the channel helpers use.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value on ch, failing the test if ch
// is closed first or nothing arrives within timeout. what names the
// awaited value in the failure message.
//
//	line := testutil.RequireReceive[string](t, writer.C, 5*time.Second, "first line")
func RequireReceive[T any](t Fataler, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed before a value arrived", describe(what))
		}
		return value
	case <-deadline.C:
		t.Fatalf("%s: nothing received within %v", describe(what), timeout)
	}
	var zero T
	return zero
}

// RequireSend delivers value on ch within timeout or fails the test.
// Streaming tests use it to feed a producer one element at a time.
func RequireSend[T any](t Fataler, ch chan<- T, value T, timeout time.Duration, what string) {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case ch <- value:
	case <-deadline.C:
		t.Fatalf("%s: not accepted within %v", describe(what), timeout)
	}
}

// RequireClosed waits until done is closed (or delivers a value).
func RequireClosed(t Fataler, done <-chan struct{}, timeout time.Duration, what string) {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case <-done:
	case <-deadline.C:
		t.Fatalf("%s: still open after %v", describe(what), timeout)
	}
}

func describe(what string) string {
	if what == "" {
		return "channel"
	}
	return what
}
