// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Shellfn calls typed functions from the shell. It loads a manifest
// describing functions and their signatures, synthesizes a
// command-line grammar per function, and runs calls (run), generates
// sourceable shell wrappers (source), lists and describes functions
// (functions, schema), and maintains the wrapper cache (cache).
package main
