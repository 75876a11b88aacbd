// Package design holds the visual vocabulary of the printer.
//
// This file provides box rendering: build the content first, then draw the border in one
// pass sized by the widest line.
package design

import (
	"strings"

	"github.com/dkoosis/printer/pkg/ansi"
)

// Box renders lines inside a border taken from a theme.
type Box struct {
	theme   *Theme
	width   int
	title   string
	content []string
	footer  string
}

// NewBox creates a box renderer with the given theme. A nil theme uses DefaultTheme.
func NewBox(theme *Theme) *Box {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Box{theme: theme}
}

// Title sets the title, drawn on the first content line in the theme's title style.
func (b *Box) Title(title string) *Box {
	b.title = title
	return b
}

// AddLine adds a content line.
func (b *Box) AddLine(line string) *Box {
	b.content = append(b.content, line)
	return b
}

// AddLines adds multiple content lines.
func (b *Box) AddLines(lines ...string) *Box {
	b.content = append(b.content, lines...)
	return b
}

// Footer sets a footer line, separated from the content by a rule.
func (b *Box) Footer(footer string) *Box {
	b.footer = footer
	return b
}

// Width sets the total outer width. Zero sizes the box to its content.
// Lines wider than the inner width are truncated.
func (b *Box) Width(w int) *Box {
	b.width = w
	return b
}

// Lines renders the box as separate lines without trailing newlines.
func (b *Box) Lines() []string {
	border := b.theme.Box
	paint := func(s string) string { return Colorize(s, b.theme.Border) }

	var body []string
	if b.title != "" {
		body = append(body, Colorize(b.title, b.theme.Title))
	}
	body = append(body, b.content...)

	inner := ansi.StringWidth(b.footer)
	for _, l := range body {
		inner = max(inner, ansi.StringWidth(l))
	}
	// One space of padding on each side.
	if b.width > 0 {
		inner = max(b.width-4, 0)
	}

	hline := func(left, fill, right string) string {
		return paint(left + strings.Repeat(fill, inner+2) + right)
	}
	row := func(s string) string {
		return paint(border.Left) + " " + PadRight(Truncate(s, inner), inner) + " " + paint(border.Right)
	}

	out := []string{hline(border.TopLeft, border.Top, border.TopRight)}
	for _, l := range body {
		out = append(out, row(l))
	}
	if b.footer != "" {
		out = append(out, hline(border.MiddleLeft, border.Top, border.MiddleRight))
		out = append(out, row(b.footer))
	}
	out = append(out, hline(border.BottomLeft, border.Bottom, border.BottomRight))
	return out
}

// String renders the box joined with newlines.
func (b *Box) String() string {
	return strings.Join(b.Lines(), "\n")
}

// RenderBox is a convenience function for simple box rendering.
func RenderBox(theme *Theme, title string, lines ...string) string {
	return NewBox(theme).Title(title).AddLines(lines...).String()
}
