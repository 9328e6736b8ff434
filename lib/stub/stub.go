// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stub

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/render"
)

var (
	functionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	variableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Options locate the pieces a generated wrapper refers to.
type Options struct {
	// Executable is the shellfn binary the runner function calls.
	Executable string

	// Source is the manifest path passed to "shellfn run". It should
	// be absolute so the wrapper works from any directory.
	Source string
}

// Generate renders the shell wrapper for manifest. Sourcing the result
// defines one shell function per exported function, each forwarding
// its arguments to "shellfn run", and declares the exported variables.
//
// Output depends only on the manifest and opts, so equal inputs give
// byte-identical wrappers.
func Generate(manifest *funcspec.Manifest, opts Options) (string, error) {
	if opts.Executable == "" {
		return "", fmt.Errorf("generating wrapper: executable path is empty")
	}
	if opts.Source == "" {
		return "", fmt.Errorf("generating wrapper: source path is empty")
	}

	var b strings.Builder
	writeBanner(&b, manifest, opts.Source)

	runner := RunnerName(opts.Source)
	b.WriteString("# Runner\n")
	fmt.Fprintf(&b, "%s() {\n    %s run %s \"$@\"\n}\n",
		runner, shellQuote(opts.Executable), shellQuote(opts.Source))

	functions := manifest.ExportedFunctions()
	if len(functions) > 0 {
		b.WriteString("\n# Functions\n")
	}
	for _, function := range functions {
		if !functionName.MatchString(function.Name) {
			return "", fmt.Errorf("function %q is not a valid shell function name", function.Name)
		}
		fmt.Fprintf(&b, "%s() {\n    %s %s \"$@\"\n}\n", function.Name, runner, function.Name)
	}

	variables := manifest.ExportedVariables()
	if len(variables) > 0 {
		b.WriteString("\n# Variables\n")
	}
	for _, name := range variables {
		if !variableName.MatchString(name) {
			return "", fmt.Errorf("variable %q is not a valid shell variable name", name)
		}
		b.WriteString(render.Declare(name, manifest.Variables[name]))
	}
	return b.String(), nil
}

func writeBanner(b *strings.Builder, manifest *funcspec.Manifest, source string) {
	title := "shellfn wrapper"
	if manifest.Name != "" {
		title += " for " + commentText(manifest.Name)
	}
	rule := strings.Repeat("#", 60)
	fmt.Fprintf(b, "%s\n# %s\n# source: %s\n# Generated file. Edits are lost on regeneration.\n%s\n\n",
		rule, title, commentText(source), rule)
}

// commentText makes text safe to place after "#" on one line. Text
// holding a newline or other control character is written as a
// Go-quoted string so it cannot end the comment.
func commentText(text string) string {
	if strings.ContainsFunc(text, unicode.IsControl) {
		return strconv.Quote(text)
	}
	return text
}

// RunnerName is the name of the wrapper's private runner function. It
// is derived from the source path so that wrappers for different
// manifests can be sourced into one shell without colliding.
func RunnerName(source string) string {
	sum := blake3.Sum256([]byte(source))
	return "_shellfn_run_" + hex.EncodeToString(sum[:4])
}

// WrapperName maps a source path to the wrapper's file name: the path
// components in reverse order joined with "_", with dots and spaces
// replaced, so that nearby files get distinguishable names.
//
//	/home/user/tools/demo.jsonc → demo_jsonc_tools_user_home.sh
func WrapperName(source string) string {
	cleaned := filepath.ToSlash(filepath.Clean(source))
	var parts []string
	for _, part := range strings.Split(cleaned, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	name := strings.Join(parts, "_")
	name = strings.NewReplacer(".", "_", " ", "_").Replace(name)
	return name + ".sh"
}

// shellQuote wraps text in single quotes for POSIX shells.
func shellQuote(text string) string {
	return "'" + strings.ReplaceAll(text, "'", `'\''`) + "'"
}
