// Package printer writes colored, width-aware text to a console.
//
// A Printer owns an output stream and a stack of indentation groups. Every line it
// writes, including lines it wraps, starts with the prefix of the active groups and fits
// the console width when wrapping is on. Structured writes (aligned key/values, titles,
// tables, boxes, progress bars) are built on the same line discipline.
//
// A Printer is not safe for concurrent use; callers sharing one must synchronize.
package printer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dkoosis/printer/pkg/ansi"
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/pkg/wrap"
)

// ErrLineBusy is returned by writes attempted while a progress session owns the line.
var ErrLineBusy = errors.New("printer: console line is owned by a progress session")

// Printer is the write surface of the module.
type Printer struct {
	cfg   Config
	out   io.Writer
	theme *design.Theme
	log   zerolog.Logger

	groups []Group

	inLine bool          // the current output line has content and no newline yet
	col    int           // visible columns written on the current line, prefix included
	sgr    ansi.SGRState // caller style in effect on the current line
	carry  string        // style to re-open after the next prefix

	session *ProgressSession
}

// New creates a printer. See Config for defaults.
func New(cfg Config) *Printer {
	normalized := normalizeConfig(cfg)
	return &Printer{
		cfg:   normalized,
		out:   normalized.Out,
		theme: normalized.Theme,
		log:   normalized.Logger.With().Str("component", "printer").Logger(),
	}
}

// Colors reports whether escape sequences are emitted.
func (p *Printer) Colors() bool { return p.cfg.Colors }

// Theme returns the printer's theme.
func (p *Printer) Theme() *design.Theme { return p.theme }

// InLine reports whether the current line has been started but not terminated.
func (p *Printer) InLine() bool { return p.inLine }

// ConsoleWidth returns the width lines are wrapped to, or 0 when wrapping is off.
func (p *Printer) ConsoleWidth() int {
	if p.cfg.WidthLimit.Disabled {
		return 0
	}
	if p.cfg.WidthLimit.Columns > 0 {
		return p.cfg.WidthLimit.Columns
	}
	if w, ok := p.cfg.Width.Width(); ok {
		return w
	}
	if p.cfg.FallbackWidth < 0 {
		p.log.Debug().Msg("console width unknown, wrapping disabled")
		return 0
	}
	p.log.Debug().Int("fallback", p.cfg.FallbackWidth).Msg("console width unknown, using fallback")
	return p.cfg.FallbackWidth
}

// Budget returns the columns left for content after the group prefix, or 0 when
// wrapping is off. It is at least 1 while wrapping is on.
func (p *Printer) Budget() int {
	w := p.ConsoleWidth()
	if w <= 0 {
		return 0
	}
	return max(w-p.prefixWidth(), 1)
}

// Write implements io.Writer by writing p as text. See WriteString.
func (p *Printer) Write(b []byte) (int, error) {
	return p.WriteString(string(b))
}

// WriteString writes text through the layout engine: hard newlines end lines, lines
// longer than the budget are word-wrapped, every new line gets the group prefix and
// a style left open by text is closed at the end of the call.
// A truncated escape sequence fails with *ansi.MalformedEscapeError before anything is
// written.
func (p *Printer) WriteString(text string) (int, error) {
	if p.session != nil {
		return 0, ErrLineBusy
	}
	if err := ansi.Validate(text); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	if err := p.write(text); err != nil {
		return 0, err
	}
	return len(text), nil
}

// WriteLine writes text followed by a newline.
func (p *Printer) WriteLine(text string) error {
	_, err := p.WriteString(text + "\n")
	return err
}

// Printf formats and writes.
func (p *Printer) Printf(format string, args ...any) error {
	_, err := p.WriteString(fmt.Sprintf(format, args...))
	return err
}

// NewLine terminates the current line if one is open.
func (p *Printer) NewLine() error {
	if p.session != nil {
		return ErrLineBusy
	}
	if !p.inLine {
		return nil
	}
	return p.newline()
}

func (p *Printer) write(text string) error {
	pieces := strings.Split(text, "\n")
	for i, piece := range pieces {
		if i > 0 {
			if err := p.newline(); err != nil {
				return err
			}
		}
		if piece == "" {
			continue
		}
		if err := p.writePiece(piece); err != nil {
			return err
		}
	}
	return p.closeStyle()
}

// writePiece writes text without hard newlines, wrapping it when it does not fit.
func (p *Printer) writePiece(text string) error {
	text = p.carry + text
	p.carry = ""
	if err := p.startLine(); err != nil {
		return err
	}

	width := p.ConsoleWidth()
	first := width - p.col
	w := ansi.StringWidth(text)
	if width <= 0 || w <= first {
		p.col += w
		return p.emit(text)
	}

	rest := max(width-p.prefixWidth(), 1)
	lines, err := wrap.LinesFrom(text, first, rest, wrap.Options{})
	if err != nil {
		return err
	}
	n := 0
	for line := range lines {
		if n > 0 {
			if err := p.newline(); err != nil {
				return err
			}
			// Wrapped lines carry their own style.
			p.carry = ""
			if err := p.startLine(); err != nil {
				return err
			}
		}
		p.col += line.Width
		if err = p.emit(line.Text); err != nil {
			return err
		}
		n++
	}
	return nil
}

// startLine writes the prefix if the current line is empty.
func (p *Printer) startLine() error {
	if p.inLine {
		return nil
	}
	p.inLine = true
	p.col = p.prefixWidth()
	return p.raw(p.Prefix())
}

// emit writes content for the current line in the innermost group color and tracks the
// caller's style.
func (p *Printer) emit(text string) error {
	_ = p.sgr.ApplyAll(text) // validated on entry
	if c := p.groupColor(); !c.IsZero() {
		text = design.Colorize(text, c)
	}
	return p.raw(text)
}

// newline ends the current line. A caller style still open is closed before the line
// break and re-opened after the next prefix.
func (p *Printer) newline() error {
	if p.sgr.Active() {
		p.carry = p.sgr.Open()
		if err := p.raw(ansi.Reset); err != nil {
			return err
		}
		p.sgr = ansi.SGRState{}
	}
	p.inLine = false
	p.col = 0
	return p.raw("\n")
}

// closeStyle resets a caller style left open at the end of a write.
func (p *Printer) closeStyle() error {
	p.carry = ""
	if !p.sgr.Active() {
		return nil
	}
	p.sgr = ansi.SGRState{}
	return p.raw(ansi.Reset)
}

// raw writes to the output, dropping escape sequences when colors are off.
func (p *Printer) raw(s string) error {
	if s == "" {
		return nil
	}
	if !p.cfg.Colors {
		stripped, err := ansi.Strip(s)
		if err != nil {
			return err
		}
		if stripped == "" {
			return nil
		}
		s = stripped
	}
	_, err := io.WriteString(p.out, s)
	return err
}

// writeVerbatim writes one prebuilt line, already sized by the caller, with the prefix
// and without wrapping. An open line is terminated first.
func (p *Printer) writeVerbatim(line string) error {
	if p.inLine {
		if err := p.newline(); err != nil {
			return err
		}
	}
	if err := p.startLine(); err != nil {
		return err
	}
	p.col += ansi.StringWidth(line)
	if err := p.emit(line); err != nil {
		return err
	}
	if err := p.closeStyle(); err != nil {
		return err
	}
	return p.newline()
}
