// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package failure

import (
	"errors"
	"fmt"
	"testing"
)

func TestFailure_ErrorNamesParameter(t *testing.T) {
	err := Coercion("x", "int", errors.New("invalid int value: 'a'"))
	want := "argument x: invalid int value: 'a'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Expected != "int" {
		t.Errorf("Expected = %q, want %q", err.Expected, "int")
	}
}

func TestFailure_ErrorWithoutParameter(t *testing.T) {
	err := Parse("unrecognized arguments: %s", "extra")
	if err.Error() != "unrecognized arguments: extra" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMissingRequired_ListsAllNames(t *testing.T) {
	err := MissingRequired("x", "y")
	want := "the following arguments are required: x, y"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"parse", Parse("bad"), KindParse},
		{"coercion", Coercion("a", "int", errors.New("bad")), KindCoercion},
		{"missing", MissingRequired("a"), KindMissingRequired},
		{"io", IO("f", errors.New("no such file")), KindIO},
		{"invocation", Invocation(errors.New("boom")), KindInvocation},
		{"cache", Cache("corrupt"), KindCache},
		{"wrapped", fmt.Errorf("outer: %w", Parse("inner")), KindParse},
		{"plain", errors.New("plain"), KindInvocation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := KindOf(test.err); got != test.want {
				t.Errorf("KindOf() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if code := ExitCode(nil); code != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", code)
	}
	if code := ExitCode(Cache("stale")); code != 0 {
		t.Errorf("ExitCode(cache) = %d, want 0", code)
	}
	for _, err := range []error{Parse("a"), MissingRequired("b"), Invocation(errors.New("c"))} {
		if code := ExitCode(err); code != ExitFailure {
			t.Errorf("ExitCode(%v) = %d, want %d", err, code, ExitFailure)
		}
	}
}

func TestFailure_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("context: %w", Invocation(cause))
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Failure")
	}
	var f *Failure
	if !errors.As(err, &f) || f.Kind != KindInvocation {
		t.Errorf("errors.As found %+v, want invocation failure", f)
	}
}
