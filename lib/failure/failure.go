// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an invocation failed. The kind decides whether
// the failure ends the invocation and how it is reported; the message
// travels in the wrapped error.
type Kind string

const (
	// KindParse indicates the command line could not be split into
	// parameter values: unknown flags, too many arguments, a flag
	// missing its value.
	KindParse Kind = "parse"

	// KindCoercion indicates a raw value could not be converted to the
	// parameter's declared type.
	KindCoercion Kind = "coercion"

	// KindMissingRequired indicates one or more required parameters
	// received no value from the command line, a default, or stdin.
	KindMissingRequired Kind = "missing_required"

	// KindIO indicates a stream parameter could not be opened or read.
	KindIO Kind = "io"

	// KindInvocation indicates the target function returned an error,
	// panicked, or its lazy result failed while being drained.
	KindInvocation Kind = "invocation"

	// KindCache indicates a cached stub artifact was unreadable or
	// stale. Cache failures are recovered by regenerating the artifact
	// and are never reported to the user.
	KindCache Kind = "cache"
)

// ExitFailure is the single exit code used for every terminal failure.
const ExitFailure = 1

// Failure is a classified error. Use the kind-specific constructors
// rather than building one directly.
type Failure struct {
	// Kind classifies the failure.
	Kind Kind

	// Parameter names the parameter the failure concerns. Empty for
	// failures that are not tied to a single parameter.
	Parameter string

	// Expected is the human-readable type summary the parameter
	// declared. Only set for coercion failures.
	Expected string

	// Err is the underlying error carrying the message.
	Err error
}

// Error renders the failure the way it appears on the error stream:
// "argument <name>: <message>" for parameter failures, the bare
// message otherwise.
func (f *Failure) Error() string {
	if f.Parameter != "" {
		return fmt.Sprintf("argument %s: %v", f.Parameter, f.Err)
	}
	return f.Err.Error()
}

// Unwrap returns the underlying error so errors.Is and errors.As walk
// through the Failure.
func (f *Failure) Unwrap() error { return f.Err }

// Parse creates a parse failure.
func Parse(format string, args ...any) *Failure {
	return &Failure{Kind: KindParse, Err: fmt.Errorf(format, args...)}
}

// Coercion creates a coercion failure for parameter, recording the
// declared type summary.
func Coercion(parameter, expected string, err error) *Failure {
	return &Failure{Kind: KindCoercion, Parameter: parameter, Expected: expected, Err: err}
}

// MissingRequired creates a failure naming every missing parameter.
func MissingRequired(names ...string) *Failure {
	return &Failure{
		Kind: KindMissingRequired,
		Err:  fmt.Errorf("the following arguments are required: %s", strings.Join(names, ", ")),
	}
}

// IO creates a stream failure for parameter.
func IO(parameter string, err error) *Failure {
	return &Failure{Kind: KindIO, Parameter: parameter, Err: err}
}

// Invocation wraps an error raised by the target function.
func Invocation(err error) *Failure {
	return &Failure{Kind: KindInvocation, Err: err}
}

// Cache creates a cache failure.
func Cache(format string, args ...any) *Failure {
	return &Failure{Kind: KindCache, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first Failure in err's chain. Errors
// that carry no Failure are treated as invocation failures; nil has no
// kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInvocation
}

// IsTerminal reports whether err ends the invocation. Everything
// except cache failures is terminal.
func IsTerminal(err error) bool {
	return err != nil && KindOf(err) != KindCache
}

// ExitCode maps err to a process exit code: 0 for nil and
// ExitFailure for anything terminal.
func ExitCode(err error) int {
	if IsTerminal(err) {
		return ExitFailure
	}
	return 0
}
