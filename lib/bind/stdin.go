// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bind

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DetectStdin reports whether file, normally os.Stdin, carries input
// for the call: it is a pipe, a regular file, or a socket. Terminals
// and other character devices such as /dev/null do not count, so a
// command run from cron or with </dev/null behaves like an interactive
// one.
func DetectStdin(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := int(file.Fd())
	if term.IsTerminal(fd) {
		return false
	}
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return false
	}
	return stat.Mode&unix.S_IFMT != unix.S_IFCHR
}
