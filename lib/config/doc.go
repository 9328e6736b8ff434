// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads shellfn's YAML configuration.
//
// The file is named by the --config flag or the SHELLFN_CONFIG
// environment variable. With neither, [Default] applies: generated
// wrappers are sourced into interactive shells, and a missing config
// file must not break every shell function.
//
//	paths:
//	  cache: ${SHELLFN_CACHE:-/var/tmp/shellfn}
//	cache:
//	  compression: zstd   # none, lz4, zstd
//	  max_age: 720h
//	output:
//	  format: shell       # shell, json
//	log:
//	  level: warn         # debug, info, warn, error
//
// ${VAR} and ${VAR:-default} are expanded in paths. Defaults are
// literal text; nested expansions are not supported.
package config
