// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package module binds manifests to Go implementations.
//
// A manifest is data: it names functions and declares their
// parameters. The code that runs is compiled into the shellfn binary
// as a [Module] and found through a [Registry] by the manifest's name.
package module
