// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

// WriterChannel is an io.Writer that sends a copy of each Write on C.
// C is unbuffered, so a Write blocks until the test receives it; pair
// it with RequireReceive.
type WriterChannel struct {
	C chan string
}

// NewWriterChannel returns a WriterChannel with an unbuffered channel.
func NewWriterChannel() *WriterChannel {
	return &WriterChannel{C: make(chan string)}
}

// Write sends p on C.
func (w *WriterChannel) Write(p []byte) (int, error) {
	w.C <- string(p)
	return len(p), nil
}
