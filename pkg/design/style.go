// Package design holds the visual vocabulary of the printer: the color model, themes,
// padding helpers and boxes. Every measurement goes through package ansi.
package design

import (
	"strings"

	"github.com/dkoosis/printer/pkg/ansi"
)

// Alignment positions text inside a wider column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ParseAlignment accepts "left", "center"/"centre" and "right".
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "l":
		return AlignLeft, true
	case "center", "centre", "c":
		return AlignCenter, true
	case "right", "r":
		return AlignRight, true
	}
	return AlignLeft, false
}

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// PadRight pads s with spaces to the given visual width.
// Replaces fmt.Sprintf("%-*s", width, s), which counts bytes and escape codes.
func PadRight(s string, width int) string {
	vw := ansi.StringWidth(s)
	if vw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vw)
}

// PadLeft pads s with leading spaces to the given visual width.
func PadLeft(s string, width int) string {
	vw := ansi.StringWidth(s)
	if vw >= width {
		return s
	}
	return strings.Repeat(" ", width-vw) + s
}

// PadCenter centers s in width columns; an odd remainder goes to the right.
func PadCenter(s string, width int) string {
	vw := ansi.StringWidth(s)
	if vw >= width {
		return s
	}
	left := (width - vw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-vw-left)
}

// Pad aligns s inside width columns.
func Pad(s string, width int, align Alignment) string {
	switch align {
	case AlignCenter:
		return PadCenter(s, width)
	case AlignRight:
		return PadLeft(s, width)
	default:
		return PadRight(s, width)
	}
}

// Truncate cuts s to at most maxWidth visible columns, keeping escape sequences in place.
// A wide character that would straddle the limit is dropped. If anything was cut and a
// style is still open, a reset is appended.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	segs, err := ansi.Segments(s)
	if err != nil {
		runes := []rune(s)
		return string(runes[:min(len(runes), maxWidth)])
	}

	var sb strings.Builder
	var state ansi.SGRState
	used := 0
	for _, seg := range segs {
		if seg.Kind == ansi.Escape {
			sb.WriteString(seg.Value)
			state.Apply(seg.Value)
			continue
		}
		for _, g := range ansi.Graphemes(seg.Value) {
			if used+g.Width > maxWidth {
				if state.Active() {
					sb.WriteString(ansi.Reset)
				}
				return sb.String()
			}
			sb.WriteString(g.Value)
			used += g.Width
		}
	}
	return sb.String()
}
