// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/render"
	"github.com/bureau-foundation/shellfn/lib/runner"
	"github.com/bureau-foundation/shellfn/lib/testutil"
)

type invocation struct {
	stdin  string
	format render.Format
}

func call(t *testing.T, name string, tokens ...string) (stdout, stderr string, code int) {
	t.Helper()
	return callWith(t, invocation{}, name, tokens...)
}

func callWith(t *testing.T, options invocation, name string, tokens ...string) (stdout, stderr string, code int) {
	t.Helper()
	manifest, err := funcspec.ParseJSONC(Manifest)
	if err != nil {
		t.Fatalf("parsing demo manifest: %v", err)
	}
	function, ok := manifest.Function(name)
	if !ok {
		t.Fatalf("demo manifest has no function %s", name)
	}
	module := Module()
	target, ok := module.Target(name)
	if !ok {
		t.Fatalf("demo module has no target %s", name)
	}

	var out, errOut bytes.Buffer
	var stdin io.Reader = strings.NewReader(options.stdin)
	r := &runner.Runner{
		Stdout:        &out,
		Stderr:        &errOut,
		Stdin:         stdin,
		StdinAttached: options.stdin != "",
		Coercer:       module.Coercer(),
		Format:        options.format,
	}
	code = r.Run(context.Background(), function, target, tokens)
	return out.String(), errOut.String(), code
}

func expect(t *testing.T, name string, tokens []string, want string) {
	t.Helper()
	stdout, stderr, code := call(t, name, tokens...)
	if code != 0 {
		t.Fatalf("%s %v exited %d: %s", name, tokens, code, stderr)
	}
	if stdout != want {
		t.Errorf("%s %v = %q, want %q", name, tokens, stdout, want)
	}
}

func TestManifestMatchesModule(t *testing.T) {
	manifest, err := funcspec.ParseJSONC(Manifest)
	if err != nil {
		t.Fatalf("ParseJSONC: %v", err)
	}
	if manifest.Name != Module().Name {
		t.Errorf("manifest name = %q, want %q", manifest.Name, Module().Name)
	}
	if err := Module().Check(manifest); err != nil {
		t.Errorf("Check: %v", err)
	}
	if len(manifest.ExportedFunctions()) != len(Module().Targets) {
		t.Errorf("manifest declares %d functions, module implements %d",
			len(manifest.ExportedFunctions()), len(Module().Targets))
	}
}

func TestMultiply(t *testing.T) {
	expect(t, "multiply", []string{"6", "7"}, "42\n")
	expect(t, "multiply", []string{"--y", "7", "--x", "3"}, "21\n")
}

func TestGreet(t *testing.T) {
	expect(t, "greet", []string{"Ada"}, "Hello, Ada!\n")
	expect(t, "greet", []string{"Ada", "--shout"}, "HELLO, ADA!\n")
	expect(t, "greet", []string{"--punctuation", "?", "Ada"}, "Hello, Ada?\n")
}

func TestFileExists(t *testing.T) {
	path := testutil.WriteFile(t, "present.txt", "x")
	expect(t, "fileexists", []string{path}, "true\n")
	expect(t, "fileexists", []string{filepath.Join(filepath.Dir(path), "absent.txt")}, "false\n")
	expect(t, "fileexists", []string{filepath.Dir(path)}, "false\n")
}

func TestGrepFiles(t *testing.T) {
	first := testutil.WriteFile(t, "first.txt", "abc\nxyz\nbcd\n")
	second := testutil.WriteFile(t, "second.txt", "nope\nbe\n")

	expect(t, "grep", []string{"b.", first, second},
		first+":abc\n"+first+":bcd\n"+second+":be\n")
	expect(t, "grep", []string{"--invert", "b", first}, "xyz\n")
}

func TestGrepStdin(t *testing.T) {
	stdout, stderr, code := callWith(t, invocation{stdin: "alpha\nbeta\nbravo\n"}, "grep", "^b")
	if code != 0 {
		t.Fatalf("grep exited %d: %s", code, stderr)
	}
	if stdout != "beta\nbravo\n" {
		t.Errorf("grep ^b < input = %q, want beta and bravo", stdout)
	}
}

func TestGrepMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	stdout, stderr, code := call(t, "grep", "x", missing)
	if code == 0 {
		t.Fatal("grep on a missing file succeeded")
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "grep: error: ") || !strings.Contains(stderr, "missing.txt") {
		t.Errorf("stderr = %q, want an error naming the file", stderr)
	}
}

func TestGrepInvalidPattern(t *testing.T) {
	path := testutil.WriteFile(t, "input.txt", "x\n")
	_, stderr, code := call(t, "grep", "(", path)
	if code == 0 {
		t.Fatal("grep with an invalid pattern succeeded")
	}
	if !strings.Contains(stderr, "argument pattern") {
		t.Errorf("stderr = %q, want a pattern coercion error", stderr)
	}
}

func TestHead(t *testing.T) {
	path := testutil.WriteFile(t, "lines.txt", "1\n2\n3\n4\n")
	expect(t, "head", []string{path, "--lines", "2"}, "1\n2\n")
	expect(t, "head", []string{path}, "1\n2\n3\n4\n")

	stdout, stderr, code := callWith(t, invocation{stdin: "a\nb\n"}, "head", "--lines", "1")
	if code != 0 || stdout != "a\n" {
		t.Errorf("head --lines 1 < input = (%q, %q, %d), want a", stdout, stderr, code)
	}
}

func TestPageTitle(t *testing.T) {
	page := "<html><head><title> Hello\n  World </title></head><body><p>x</p></body></html>"
	stdout, stderr, code := callWith(t, invocation{stdin: page}, "pagetitle")
	if code != 0 {
		t.Fatalf("pagetitle exited %d: %s", code, stderr)
	}
	if stdout != "Hello World\n" {
		t.Errorf("pagetitle = %q, want Hello World", stdout)
	}

	expect(t, "pagetitle", []string{"<p>untitled</p>"}, "")
}

func TestStats(t *testing.T) {
	expect(t, "stats", []string{"2", "4", "4", "4", "5", "5", "7", "9"},
		`(["count"]=8.0 ["max"]=9.0 ["mean"]=5.0 ["min"]=2.0 ["stddev"]=2.0 ["sum"]=40.0)`+"\n")

	_, stderr, code := call(t, "stats", "1", "two")
	if code == 0 || !strings.Contains(stderr, "invalid float value: 'two'") {
		t.Errorf("stats 1 two = (%q, %d), want a float coercion error", stderr, code)
	}
}

func TestWeekday(t *testing.T) {
	expect(t, "weekday", []string{"2024-02-29"}, "Thursday\n")
	expect(t, "weekday", []string{"20260101"}, "Thursday\n")
}

func TestRequest(t *testing.T) {
	expect(t, "request",
		[]string{"GET", "https://example.com/a?b=1", "--headers", "Accept=json", "X-Trace=1", "--timeout", "2.5"},
		"GET /a?b=1 HTTP/1.1\nHost: example.com\nAccept: json\nX-Trace: 1\n(timeout 2.5s)\n")
	expect(t, "request", []string{"DELETE", "http://localhost:8080/"},
		"DELETE / HTTP/1.1\nHost: localhost:8080\n")

	_, stderr, code := call(t, "request", "PUT", "https://example.com")
	if code == 0 || !strings.Contains(stderr, "invalid choice: 'PUT'") {
		t.Errorf("request PUT = (%q, %d), want an invalid choice error", stderr, code)
	}
}

func TestNewIDs(t *testing.T) {
	stdout, stderr, code := call(t, "newids", "3")
	if code != 0 {
		t.Fatalf("newids exited %d: %s", code, stderr)
	}
	ids := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(ids) != 3 {
		t.Fatalf("newids 3 printed %d lines, want 3", len(ids))
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("newids printed %q, not a UUID: %v", id, err)
		}
	}
}

func TestKinds(t *testing.T) {
	stdout, stderr, code := callWith(t, invocation{format: render.FormatJSON}, "kinds", "x", "2", "--c", "3", "4")
	if code != 0 {
		t.Fatalf("kinds exited %d: %s", code, stderr)
	}
	if stdout != `{"a":"x","b":2,"c":[3,4]}`+"\n" {
		t.Errorf("kinds = %q", stdout)
	}

	stdout, _, _ = callWith(t, invocation{format: render.FormatJSON}, "kinds", "x")
	if stdout != `{"a":"x","b":1.5,"c":[0,0]}`+"\n" {
		t.Errorf("kinds with defaults = %q", stdout)
	}
}
