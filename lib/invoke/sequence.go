// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"context"
	"iter"
)

// Sequence is a lazily produced, finite, non-restartable series of
// values. A target returns a Sequence instead of a value when it
// produces output incrementally; the consumer pulls each element and
// renders it before asking for the next.
type Sequence interface {
	// Next returns the next element. ok is false once the sequence is
	// exhausted; err reports a failure in the producer.
	Next(ctx context.Context) (value any, ok bool, err error)

	// Close releases the producer. Safe to call more than once and
	// before exhaustion.
	Close() error
}

// FromSlice returns a Sequence over values.
func FromSlice(values ...any) Sequence {
	return &sliceSequence{values: values}
}

type sliceSequence struct {
	values []any
}

func (s *sliceSequence) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if len(s.values) == 0 {
		return nil, false, nil
	}
	value := s.values[0]
	s.values = s.values[1:]
	return value, true, nil
}

func (s *sliceSequence) Close() error {
	s.values = nil
	return nil
}

// FromChannel returns a Sequence that receives from values until it
// is closed. The producer owns the channel and must close it.
func FromChannel(values <-chan any) Sequence {
	return &channelSequence{values: values}
}

type channelSequence struct {
	values <-chan any
}

func (s *channelSequence) Next(ctx context.Context) (any, bool, error) {
	select {
	case value, ok := <-s.values:
		return value, ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *channelSequence) Close() error { return nil }

// FromSeq adapts a push iterator. The iterator runs only as elements
// are pulled, so each element is produced on demand; Close stops it
// early.
func FromSeq(seq iter.Seq2[any, error]) Sequence {
	next, stop := iter.Pull2(seq)
	return &pullSequence{next: next, stop: stop}
}

type pullSequence struct {
	next func() (any, error, bool)
	stop func()
}

func (s *pullSequence) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	value, err, ok := s.next()
	if !ok {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *pullSequence) Close() error {
	s.stop()
	return nil
}
