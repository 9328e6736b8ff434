// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// StdinPath is the path that names the process's standard input.
const StdinPath = "-"

// Stream is the coerced value of a stream-typed parameter. Coercion
// only checks that the path exists; the handle is opened by the
// invocation manager immediately before the call and closed after the
// result has been rendered.
//
// An open Stream is an io.Reader. Text streams strip a leading byte
// order mark and decode UTF-16 input that carries one. Any other bytes,
// including invalid UTF-8, pass through unchanged, as does everything
// in a binary stream.
type Stream struct {
	// Path is the file path, or StdinPath.
	Path string

	// Mode selects text or binary reading.
	Mode typedesc.StreamMode

	reader io.Reader
	file   *os.File
}

// ErrStreamNotOpen is returned by Read on a stream that has not been
// opened or has already been closed.
var ErrStreamNotOpen = errors.New("stream is not open")

// IsStdin reports whether the stream reads standard input.
func (s *Stream) IsStdin() bool { return s.Path == StdinPath }

// Name is the path, or "<stdin>".
func (s *Stream) Name() string {
	if s.IsStdin() {
		return "<stdin>"
	}
	return s.Path
}

// String returns Name so a stream renders readably.
func (s *Stream) String() string { return s.Name() }

// IsOpen reports whether the stream can be read.
func (s *Stream) IsOpen() bool { return s.reader != nil }

// Open acquires the underlying handle. Standard input is read from
// stdin and is never closed by the stream.
func (s *Stream) Open(stdin io.Reader) error {
	if s.reader != nil {
		return nil
	}
	var source io.Reader
	if s.IsStdin() {
		source = stdin
	} else {
		file, err := os.Open(s.Path)
		if err != nil {
			return err
		}
		s.file = file
		source = file
	}
	if s.Mode == typedesc.Text {
		source = transform.NewReader(source, unicode.BOMOverride(transform.Nop))
	}
	s.reader = source
	return nil
}

// Read reads from the open stream.
func (s *Stream) Read(p []byte) (int, error) {
	if s.reader == nil {
		return 0, ErrStreamNotOpen
	}
	return s.reader.Read(p)
}

// Close releases the handle. Closing an unopened or already closed
// stream is a no-op.
func (s *Stream) Close() error {
	s.reader = nil
	if s.file == nil {
		return nil
	}
	file := s.file
	s.file = nil
	return file.Close()
}
