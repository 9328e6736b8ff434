// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/render"
)

// Usage returns the one-line usage string, "usage: name [-h] ...".
// Keyword-only flags come first, then positionals in order.
func (g *Grammar) Usage() string {
	parts := []string{"usage:", g.Function.Name, "[-h]"}
	for _, slot := range g.Slots {
		if slot.Parameter.Kind == funcspec.KeywordOnly {
			parts = append(parts, flagUsage(slot))
		}
	}
	for _, slot := range g.Slots {
		if slot.Positional() {
			parts = append(parts, positionalUsage(slot))
		}
	}
	return strings.Join(parts, " ")
}

func flagUsage(slot *Slot) string {
	var text string
	if slot.Switch() {
		text = "--" + slot.Long + " | --" + slot.Negated
		if slot.Parameter.Required() {
			return "(" + text + ")"
		}
		return "[" + text + "]"
	}
	text = "--" + slot.Long + " " + metavar(slot)
	if slot.Parameter.Required() {
		return text
	}
	return "[" + text + "]"
}

func positionalUsage(slot *Slot) string {
	name := slot.Parameter.Name
	switch {
	case slot.Greedy && slot.Parameter.Required():
		return name + " [" + name + " ...]"
	case slot.Greedy:
		return "[" + name + " ...]"
	}
	text := strings.TrimSpace(strings.Repeat(name+" ", slot.Arity))
	if slot.Parameter.Required() {
		return text
	}
	return "[" + text + "]"
}

func metavar(slot *Slot) string {
	name := strings.ToUpper(strings.ReplaceAll(slot.Long, "-", "_"))
	if slot.Greedy {
		return name + " [" + name + " ...]"
	}
	return strings.TrimSpace(strings.Repeat(name+" ", slot.Arity))
}

// helpGroup is one titled section of the parameter table.
type helpGroup struct {
	title string
	rows  [][2]string
}

// WriteHelp writes the usage line, the docstring verbatim, and the
// parameter table grouped by kind. Styled output bolds headings and
// colors flag forms; column alignment uses display width so styling
// does not shift the descriptions.
func (g *Grammar) WriteHelp(w io.Writer, styled bool) error {
	groups := []*helpGroup{
		{title: "positional only args"},
		{title: "positional or keyword args"},
		{title: "keyword only args"},
	}
	for _, slot := range g.Slots {
		group := groups[slot.Parameter.Kind]
		group.rows = append(group.rows, [2]string{forms(slot), describe(slot.Parameter)})
	}
	groups = append(groups, &helpGroup{
		title: "options",
		rows:  [][2]string{{"-h, --help", "show this help message and exit"}},
	})

	heading := func(text string) string { return text }
	flagText := func(text string) string { return text }
	if styled {
		renderer := lipgloss.NewRenderer(w)
		headingStyle := renderer.NewStyle().Bold(true)
		flagStyle := renderer.NewStyle().Foreground(lipgloss.Color("6"))
		heading = func(text string) string { return headingStyle.Render(text) }
		flagText = func(text string) string { return flagStyle.Render(text) }
	}

	width := 0
	for _, group := range groups {
		for _, row := range group.rows {
			width = max(width, ansi.StringWidth(row[0]))
		}
	}

	var b strings.Builder
	b.WriteString(g.Usage())
	b.WriteString("\n")
	if doc := strings.TrimRight(g.Function.Doc, "\n"); doc != "" {
		b.WriteString("\n")
		b.WriteString(doc)
		b.WriteString("\n")
	}
	for _, group := range groups {
		if len(group.rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", heading(group.title))
		for _, row := range group.rows {
			left := flagText(row[0])
			padding := strings.Repeat(" ", width-ansi.StringWidth(left)+2)
			line := "  " + left + padding + row[1]
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// forms lists the ways a parameter can be written on the command line.
func forms(slot *Slot) string {
	var parts []string
	if slot.Positional() {
		parts = append(parts, slot.Parameter.Name)
	}
	if slot.Short != "" {
		parts = append(parts, "-"+slot.Short)
	}
	if slot.Flagged() {
		long := "--" + slot.Long
		if !slot.Switch() {
			long += " " + metavar(slot)
		}
		parts = append(parts, long)
	}
	if slot.Switch() {
		parts = append(parts, "--"+slot.Negated)
	}
	return strings.Join(parts, ", ")
}

// describe is the right-hand column: type summary followed by
// (required) or (default: value).
func describe(parameter funcspec.Parameter) string {
	var marker string
	switch {
	case parameter.Required():
		marker = "(required)"
	case parameter.Default == nil:
		marker = "(default: None)"
	default:
		marker = "(default: " + render.Text(parameter.Default) + ")"
	}
	if summary := parameter.Type.Summary(); summary != "" {
		return summary + " " + marker
	}
	return marker
}
