package printer

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dkoosis/printer/pkg/design"
)

const (
	// DefaultFallbackWidth is used when the console width cannot be detected.
	DefaultFallbackWidth = 80

	// DefaultIndent is the indent of a group opened without an explicit width.
	DefaultIndent = 4

	// MaxAlignColumn caps the automatic key column of aligned writes.
	MaxAlignColumn = 32

	// DefaultSeparator follows the key of an aligned write.
	DefaultSeparator = ":"
)

// WidthProvider reports the current console width. ok is false when the width is
// unknown, for example when output is not a terminal.
type WidthProvider interface {
	Width() (width int, ok bool)
}

// FixedWidth is a console of constant width. Zero or less reports unknown.
type FixedWidth int

func (w FixedWidth) Width() (int, bool) {
	return int(w), w > 0
}

// TerminalWidth queries the terminal attached to a file descriptor on every call, so
// resizes are picked up between writes.
type TerminalWidth struct {
	Fd uintptr
}

func (t TerminalWidth) Width() (int, bool) {
	w, _, err := term.GetSize(int(t.Fd))
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// WidthLimit selects the wrapping width. The zero value wraps at the detected width.
type WidthLimit struct {
	// Disabled turns wrapping off; lines are written as given.
	Disabled bool
	// Columns wraps at a fixed width instead of the detected one.
	Columns int
}

// Config configures a Printer. The zero value writes to stdout with detected colors and
// wraps at the terminal width.
type Config struct {
	Out io.Writer // defaults to os.Stdout

	// Colors enables escape sequences. Unless ColorsSet, colors are on only when Out is a
	// terminal, TERM is not "dumb" and NO_COLOR is unset.
	Colors    bool
	ColorsSet bool

	WidthLimit WidthLimit
	// Width reports the console width. Defaults to TerminalWidth when Out is a file.
	Width WidthProvider
	// FallbackWidth is used when Width reports unknown. Zero means DefaultFallbackWidth,
	// a negative value disables wrapping in that case.
	FallbackWidth int

	Theme *design.Theme // defaults to design.DefaultTheme

	// Indent is the width of groups opened with GroupOptions.Indent zero.
	Indent int
	// AlignColumn fixes the key column of aligned writes. Zero picks it from the width.
	AlignColumn int

	Logger *zerolog.Logger // defaults to a disabled logger
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if normalized.Out == nil {
		normalized.Out = os.Stdout
	}
	if !cfg.ColorsSet {
		normalized.Colors = detectColors(normalized.Out)
		normalized.ColorsSet = true
	}
	if normalized.Width == nil {
		if f, ok := normalized.Out.(*os.File); ok {
			normalized.Width = TerminalWidth{Fd: f.Fd()}
		} else {
			normalized.Width = FixedWidth(0)
		}
	}
	if normalized.FallbackWidth == 0 {
		normalized.FallbackWidth = DefaultFallbackWidth
	}
	if normalized.Theme == nil {
		normalized.Theme = design.DefaultTheme()
	}
	if normalized.Indent <= 0 {
		normalized.Indent = DefaultIndent
	}
	if normalized.Logger == nil {
		nop := zerolog.Nop()
		normalized.Logger = &nop
	}
	return normalized
}

// detectColors reports whether out looks like a color-capable terminal.
func detectColors(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
