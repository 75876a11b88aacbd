package printer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/printer/pkg/ansi"
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/pkg/table"
)

// AlignOptions configure aligned key/value writes.
type AlignOptions struct {
	// Column the value starts at, relative to the current prefix. Zero picks
	// min(MaxAlignColumn, console width / 2), or the configured AlignColumn.
	Column int
	// Dim draws the pair in the theme's dim colors, for less important keys.
	Dim bool
	// Separator follows the key. Empty means DefaultSeparator.
	Separator string
}

func (p *Printer) alignColumn(opts AlignOptions) int {
	switch {
	case opts.Column > 0:
		return opts.Column
	case p.cfg.AlignColumn > 0:
		return p.cfg.AlignColumn
	}
	w := p.ConsoleWidth()
	if w <= 0 {
		w = DefaultFallbackWidth
	}
	return min(MaxAlignColumn, w/2)
}

func (p *Printer) alignStyles(dim bool) (design.Style, design.Style) {
	if dim {
		return p.theme.DimKey, p.theme.DimValue
	}
	return p.theme.Key, p.theme.Value
}

// validatePair checks key and values before anything is written, so a bad value cannot
// leave its key on the console.
func validatePair(key string, values ...string) error {
	if err := ansi.Validate(key); err != nil {
		return fmt.Errorf("aligned key: %w", err)
	}
	for _, v := range values {
		if err := ansi.Validate(v); err != nil {
			return fmt.Errorf("aligned value for %q: %w", key, err)
		}
	}
	return nil
}

// writeKey writes key and separator padded to the value column and returns the column.
func (p *Printer) writeKey(key string, opts AlignOptions) (int, error) {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	column := p.alignColumn(opts)
	keyStyle, _ := p.alignStyles(opts.Dim)

	label := design.Colorize(key+sep, keyStyle)
	if ansi.StringWidth(label) >= column {
		label += " "
	} else {
		label = design.PadRight(label, column)
	}
	_, err := p.WriteString(label)
	return column, err
}

// WriteAligned writes "key: value" with the value starting at the key column. A value
// too long for the line wraps, and continuation lines start under the value. Nil values
// are skipped.
func (p *Printer) WriteAligned(key string, value any, opts AlignOptions) error {
	if value == nil {
		return nil
	}
	if p.session != nil {
		return ErrLineBusy
	}
	text := fmt.Sprint(value)
	if err := validatePair(key, text); err != nil {
		return err
	}
	if p.inLine {
		if err := p.newline(); err != nil {
			return err
		}
	}
	column, err := p.writeKey(key, opts)
	if err != nil {
		return err
	}
	_, valueStyle := p.alignStyles(opts.Dim)
	return p.Group(GroupOptions{Indent: column, AddLine: true}, func() error {
		return p.WriteLine(design.Colorize(text, valueStyle))
	})
}

// WriteAlignedList writes key once and every value on its own line under the value
// column. An empty list writes the key alone.
func (p *Printer) WriteAlignedList(key string, values []any, opts AlignOptions) error {
	if p.session != nil {
		return ErrLineBusy
	}
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = fmt.Sprint(v)
	}
	if err := validatePair(key, texts...); err != nil {
		return err
	}
	if p.inLine {
		if err := p.newline(); err != nil {
			return err
		}
	}
	column, err := p.writeKey(key, opts)
	if err != nil {
		return err
	}
	_, valueStyle := p.alignStyles(opts.Dim)
	return p.Group(GroupOptions{Indent: column, AddLine: true}, func() error {
		for _, v := range texts {
			if err := p.WriteLine(design.Colorize(v, valueStyle)); err != nil {
				return err
			}
		}
		return nil
	})
}

// TitleCase selects the casing applied to titles.
type TitleCase int

const (
	CaseAsIs TitleCase = iota
	CaseUpper
	CaseTitle
)

// TitleOptions configure titles.
type TitleOptions struct {
	Case TitleCase
}

// applyCase changes the case of the printable parts of s only.
func applyCase(s string, c TitleCase) string {
	var caser cases.Caser
	switch c {
	case CaseUpper:
		caser = cases.Upper(language.English)
	case CaseTitle:
		caser = cases.Title(language.English)
	default:
		return s
	}
	segs, err := ansi.Segments(s)
	if err != nil {
		return caser.String(s)
	}
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Kind == ansi.Escape {
			sb.WriteString(seg.Value)
			continue
		}
		sb.WriteString(caser.String(seg.Value))
	}
	return sb.String()
}

// WriteTitle writes title in the title color and underlines it with '=' three columns
// wider than the title, capped at the budget.
func (p *Printer) WriteTitle(title string, opts TitleOptions) error {
	if p.session != nil {
		return ErrLineBusy
	}
	title = applyCase(title, opts.Case)
	w, err := ansi.Width(title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	rule := w + 3
	if b := p.Budget(); b > 0 {
		rule = min(rule, b)
	}
	if err := p.WriteLine(design.Colorize(title, p.theme.Title)); err != nil {
		return err
	}
	return p.WriteLine(design.Colorize(strings.Repeat("=", rule), p.theme.Rule))
}

// WriteCenteredTitle centers title in the budget above a rule as wide as the budget.
// Without a known width it falls back to WriteTitle.
func (p *Printer) WriteCenteredTitle(title string, opts TitleOptions) error {
	if p.session != nil {
		return ErrLineBusy
	}
	budget := p.Budget()
	if budget <= 0 {
		return p.WriteTitle(title, opts)
	}
	title = applyCase(title, opts.Case)
	if err := ansi.Validate(title); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	line := design.Truncate(title, budget)
	line = strings.TrimRight(design.PadCenter(design.Colorize(line, p.theme.Title), budget), " ")
	if err := p.writeVerbatim(line); err != nil {
		return err
	}
	return p.writeVerbatim(design.Colorize(strings.Repeat("=", budget), p.theme.Rule))
}

// WriteTable renders t within the budget and writes it under the current prefix.
// A nil opts.Theme uses the printer's theme.
func (p *Printer) WriteTable(t *table.Table, opts table.RenderOptions) error {
	if p.session != nil {
		return ErrLineBusy
	}
	if opts.Theme == nil {
		opts.Theme = p.theme
	}
	lines, err := t.Render(p.Budget(), opts)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := p.writeVerbatim(l); err != nil {
			return err
		}
	}
	return nil
}

// WriteBox draws lines in a box with an optional title, no wider than the budget.
func (p *Printer) WriteBox(title string, lines ...string) error {
	if p.session != nil {
		return ErrLineBusy
	}
	for _, l := range append([]string{title}, lines...) {
		if err := ansi.Validate(l); err != nil {
			return fmt.Errorf("box: %w", err)
		}
	}
	box := design.NewBox(p.theme).Title(title).AddLines(lines...)
	out := box.Lines()
	if b := p.Budget(); b > 0 && len(out) > 0 && ansi.StringWidth(out[0]) > b {
		out = box.Width(b).Lines()
	}
	for _, l := range out {
		if err := p.writeVerbatim(l); err != nil {
			return err
		}
	}
	return nil
}
