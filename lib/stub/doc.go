// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stub generates the shell wrapper that makes a manifest's
// functions callable as shell commands.
//
// A wrapper has a banner, a private runner function that invokes
// "shellfn run <source>", one shim per exported function, and a
// declaration per exported variable:
//
//	_shellfn_run_1a2b3c4d() {
//	    '/usr/local/bin/shellfn' run '/home/user/demo.jsonc' "$@"
//	}
//	multiply() {
//	    _shellfn_run_1a2b3c4d multiply "$@"
//	}
//	declare -g -i answer
//	answer=42
package stub
