// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/shellfn/lib/clock"
	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/failure"
)

// Target is a callable function exposed on the command line.
type Target interface {
	Call(ctx context.Context, args *Arguments) (any, error)
}

// TargetFunc adapts a plain function to Target.
type TargetFunc func(ctx context.Context, args *Arguments) (any, error)

// Call calls f.
func (f TargetFunc) Call(ctx context.Context, args *Arguments) (any, error) {
	return f(ctx, args)
}

// Result is what a call produced: a single value, or a still-open
// Sequence that the consumer drains.
type Result struct {
	Value    any
	Sequence Sequence
}

// Lazy reports whether the result is a sequence.
func (r Result) Lazy() bool { return r.Sequence != nil }

// Manager runs targets inside a resource scope: stream arguments are
// opened just before the call and closed after the result has been
// consumed, on every exit path.
type Manager struct {
	// Stdin backs stream arguments bound to "-". Nil means os.Stdin.
	Stdin io.Reader

	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger

	// Clock times calls. Nil means the real clock.
	Clock clock.Clock
}

// Run opens the streams in args, calls target, and passes the result
// to consume. A lazy result is handed over open; consume drains it
// while the streams are still valid. Errors and panics raised by the
// target, including while its sequence is drained, come back as
// invocation failures. Stream open errors are IO failures. Errors
// returned by consume itself pass through unchanged.
func (m *Manager) Run(ctx context.Context, target Target, args *Arguments, consume func(Result) error) (err error) {
	logger := m.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stdin := m.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	timer := clock.OrReal(m.Clock)

	var opened []*coerce.Stream
	defer func() {
		for _, stream := range opened {
			if closeErr := stream.Close(); closeErr != nil {
				logger.Warn("closing stream", "stream", stream.Name(), "error", closeErr)
			}
		}
	}()
	for _, name := range args.Names() {
		for _, stream := range args.Streams(name) {
			if openErr := stream.Open(stdin); openErr != nil {
				return failure.IO(name, fmt.Errorf("can't open '%s': %w", stream.Path, openErr))
			}
			logger.Debug("opened stream", "parameter", name, "stream", stream.Name())
			opened = append(opened, stream)
		}
	}

	start := timer.Now()
	value, err := call(ctx, target, args)
	if err != nil {
		return err
	}

	sequence, lazy := value.(Sequence)
	if !lazy {
		logger.Debug("call returned", "duration", clock.Since(timer, start))
		return consume(Result{Value: value})
	}

	guarded := &guardedSequence{inner: sequence}
	defer func() {
		if closeErr := guarded.Close(); closeErr != nil && err == nil {
			err = failure.Invocation(closeErr)
		}
		logger.Debug("sequence drained", "duration", clock.Since(timer, start))
	}()
	return consume(Result{Sequence: guarded})
}

func call(ctx context.Context, target Target, args *Arguments) (value any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = panicFailure(recovered)
		}
	}()
	value, err = target.Call(ctx, args)
	if err != nil {
		return nil, asInvocation(err)
	}
	return value, nil
}

func asInvocation(err error) error {
	var f *failure.Failure
	if errors.As(err, &f) {
		return err
	}
	return failure.Invocation(err)
}

func panicFailure(recovered any) error {
	if err, ok := recovered.(error); ok {
		return failure.Invocation(fmt.Errorf("panic: %w", err))
	}
	return failure.Invocation(fmt.Errorf("panic: %v", recovered))
}

// guardedSequence converts producer errors and panics into invocation
// failures.
type guardedSequence struct {
	inner  Sequence
	closed bool
}

func (s *guardedSequence) Next(ctx context.Context) (value any, ok bool, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value, ok, err = nil, false, panicFailure(recovered)
		}
	}()
	value, ok, err = s.inner.Next(ctx)
	if err != nil {
		return nil, false, asInvocation(err)
	}
	return value, ok, nil
}

func (s *guardedSequence) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.inner.Close()
}
