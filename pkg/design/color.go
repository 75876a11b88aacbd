package design

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dkoosis/printer/pkg/ansi"
)

// SGR codes for text attributes.
const (
	codeBold      = 1
	codeFaint     = 2
	codeItalic    = 3
	codeUnderline = 4
	codeBlink     = 5
	codeReverse   = 7
)

// Style is an immutable set of text attributes plus at most one foreground color.
// The zero value is the terminal default and renders text unchanged.
type Style struct {
	attrs uint16 // bit n set = SGR attribute n
	fg    uint8  // SGR foreground code, 0 when unset
}

func fg(code uint8) Style  { return Style{fg: code} }
func attr(code uint) Style { return Style{attrs: 1 << code} }

// Named colors. Dark variants use the standard palette, the others the bright one.
var (
	Normal     = Style{}
	DarkRed    = fg(31)
	DarkGreen  = fg(32)
	DarkYellow = fg(33)
	DarkBlue   = fg(34)
	DarkPurple = fg(35)
	DarkCyan   = fg(36)
	Grey       = fg(37)
	Red        = fg(91)
	Green      = fg(92)
	Yellow     = fg(93)
	Blue       = fg(94)
	Purple     = fg(95)
	Cyan       = fg(96)
	White      = fg(97)

	Bold      = attr(codeBold)
	Faint     = attr(codeFaint)
	Italic    = attr(codeItalic)
	Underline = attr(codeUnderline)
	Blink     = attr(codeBlink)
	Reverse   = attr(codeReverse)
)

var stylesByName = map[string]Style{
	"normal":      Normal,
	"dark_red":    DarkRed,
	"dark_green":  DarkGreen,
	"dark_yellow": DarkYellow,
	"dark_blue":   DarkBlue,
	"dark_purple": DarkPurple,
	"dark_cyan":   DarkCyan,
	"grey":        Grey,
	"gray":        Grey,
	"red":         Red,
	"green":       Green,
	"yellow":      Yellow,
	"blue":        Blue,
	"purple":      Purple,
	"cyan":        Cyan,
	"white":       White,
	"bold":        Bold,
	"faint":       Faint,
	"dim":         Faint,
	"italic":      Italic,
	"underline":   Underline,
	"blink":       Blink,
	"reverse":     Reverse,
}

var colorNames = map[uint8]string{
	31: "dark_red", 32: "dark_green", 33: "dark_yellow", 34: "dark_blue",
	35: "dark_purple", 36: "dark_cyan", 37: "grey",
	91: "red", 92: "green", 93: "yellow", 94: "blue", 95: "purple", 96: "cyan", 97: "white",
}

var attrNames = map[uint]string{
	codeBold: "bold", codeFaint: "faint", codeItalic: "italic",
	codeUnderline: "underline", codeBlink: "blink", codeReverse: "reverse",
}

// ErrUnsupportedStyle is matched by every *UnsupportedStyleError.
var ErrUnsupportedStyle = errors.New("unsupported style")

// UnsupportedStyleError reports a style name with no known rendering.
type UnsupportedStyleError struct {
	Name string
}

func (e *UnsupportedStyleError) Error() string {
	return fmt.Sprintf("unsupported style %q", e.Name)
}

func (e *UnsupportedStyleError) Is(target error) bool {
	return target == ErrUnsupportedStyle
}

// StyleByName looks up a single named color or attribute (case-insensitive).
func StyleByName(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	s, ok := stylesByName[key]
	if !ok {
		return Style{}, &UnsupportedStyleError{Name: name}
	}
	return s, nil
}

// ParseStyle parses a combination such as "bold+red" or "underline, dark_cyan".
// Later colors override earlier ones; attributes accumulate.
func ParseStyle(spec string) (Style, error) {
	parts := strings.FieldsFunc(spec, func(r rune) bool {
		return r == '+' || r == ',' || unicode.IsSpace(r)
	})
	var out Style
	for _, p := range parts {
		s, err := StyleByName(p)
		if err != nil {
			return Style{}, err
		}
		out = out.With(s)
	}
	return out, nil
}

// With combines two styles. Text attributes are unioned; other's foreground wins when set.
func (s Style) With(other Style) Style {
	out := Style{attrs: s.attrs | other.attrs, fg: s.fg}
	if other.fg != 0 {
		out.fg = other.fg
	}
	return out
}

// IsZero reports whether s is the terminal default.
func (s Style) IsZero() bool {
	return s.attrs == 0 && s.fg == 0
}

// Sequence returns the SGR escape for s, attributes first in code order, then the color.
func (s Style) Sequence() string {
	if s.IsZero() {
		return ""
	}
	codes := make([]string, 0, 4)
	for code := uint(1); code < 16; code++ {
		if s.attrs&(1<<code) != 0 {
			codes = append(codes, strconv.Itoa(int(code)))
		}
	}
	if s.fg != 0 {
		codes = append(codes, strconv.Itoa(int(s.fg)))
	}
	return ansi.CSI + strings.Join(codes, ";") + "m"
}

// Render is shorthand for Colorize(text, s).
func (s Style) Render(text string) string {
	return Colorize(text, s)
}

// String returns the canonical name, e.g. "bold+red".
func (s Style) String() string {
	if s.IsZero() {
		return "normal"
	}
	var names []string
	codes := make([]int, 0, len(attrNames))
	for code := range attrNames {
		if s.attrs&(1<<code) != 0 {
			codes = append(codes, int(code))
		}
	}
	sort.Ints(codes)
	for _, c := range codes {
		names = append(names, attrNames[uint(c)])
	}
	if s.fg != 0 {
		names = append(names, colorNames[s.fg])
	}
	return strings.Join(names, "+")
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so config files can name styles.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Colorize wraps text in style. Any reset left inside text by an inner Colorize is
// followed by style again, so the outer style resumes after a nested span closes.
// The result always ends at the terminal default.
func Colorize(text string, style Style) string {
	open := style.Sequence()
	if open == "" {
		return text
	}
	body := strings.ReplaceAll(text, ansi.Reset, ansi.Reset+open)
	if strings.HasSuffix(body, ansi.Reset+open) {
		return open + strings.TrimSuffix(body, open)
	}
	return open + body + ansi.Reset
}
