package ansi

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cells measures printable text. EastAsianWidth stays false so ambiguous-width runes count
// as one column regardless of the user's locale; output must not depend on LANG.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Width returns the number of terminal columns s occupies.
// Escape sequences count zero, wide runes two, combining marks zero.
func Width(s string) (int, error) {
	if strings.IndexByte(s, ESC) < 0 {
		return cells.StringWidth(s), nil
	}
	segs, err := Segments(s)
	if err != nil {
		return 0, err
	}
	w := 0
	for _, seg := range segs {
		if seg.Kind == Text {
			w += cells.StringWidth(seg.Value)
		}
	}
	return w, nil
}

// StringWidth is Width for strings already known to be well formed, such as text this
// module produced itself. A malformed tail is measured as if the escape bytes were absent.
func StringWidth(s string) int {
	w, err := Width(s)
	if err == nil {
		return w
	}
	total := 0
	for i := 0; i < len(s); {
		if s[i] != ESC {
			j := strings.IndexByte(s[i:], ESC)
			if j < 0 {
				j = len(s) - i
			}
			total += cells.StringWidth(s[i : i+j])
			i += j
			continue
		}
		end, scanErr := scanEscape(s, i)
		if scanErr != nil {
			// Skip the ESC byte alone and keep measuring what follows.
			i++
			continue
		}
		i = end
	}
	return total
}

// RuneWidth returns the cell width of a single rune.
func RuneWidth(r rune) int {
	return cells.RuneWidth(r)
}

// Graphemes splits printable text into user-perceived characters with their widths.
// Text must not contain escape sequences.
func Graphemes(text string) []Grapheme {
	var out []Grapheme
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		s := g.Str()
		out = append(out, Grapheme{Value: s, Width: cells.StringWidth(s)})
	}
	return out
}

// Grapheme is one user-perceived character.
type Grapheme struct {
	Value string
	Width int
}
