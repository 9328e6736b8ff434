// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The stub cache ages entries against the clock when pruning, and the
// invocation manager times calls with it. Tests pass a [FakeClock] so
// that age thresholds are exact:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	cache := stubcache.New(dir, stubcache.Options{Clock: fake})
//	fake.Advance(48 * time.Hour)
//	removed, err := cache.Prune(24 * time.Hour)
package clock
