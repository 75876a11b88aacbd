package table

import (
	"fmt"
	"strings"

	"github.com/dkoosis/printer/pkg/ansi"
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/pkg/wrap"
)

// RenderOptions control text rendering.
type RenderOptions struct {
	Theme      *design.Theme    // nil means design.DefaultTheme
	Align      design.Alignment // cell alignment
	TitleAlign design.Alignment // alignment of the name above the table
	HideName   bool
	HideBorder bool // border characters become spaces and the rule lines are dropped
}

// DefaultRenderOptions left-align cells and center the name.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Align: design.AlignLeft, TitleAlign: design.AlignCenter}
}

// overhead is the number of border columns for n columns: "│ " + " │ " between + " │".
func overhead(n int) int {
	return 3*n + 1
}

// ColumnWidths computes every column's width once for the whole table: the widest of the
// header and all its cells, capped by the column limit, then narrowed to fit budget.
// A budget of zero or less means unlimited. No column is narrower than its widest
// grapheme, since a cell line always holds at least one.
func (t *Table) ColumnWidths(budget int) ([]int, error) {
	widths := make([]int, len(t.columns))
	floors := make([]int, len(t.columns))
	for i, name := range t.columns {
		w, err := cellWidth(name)
		if err != nil {
			return nil, fmt.Errorf("table %q header %q: %w", t.Name, name, err)
		}
		floor := widestGrapheme(name)
		for _, r := range t.rows {
			cw, err := cellWidth(r[i])
			if err != nil {
				return nil, fmt.Errorf("table %q column %q: %w", t.Name, name, err)
			}
			w = max(w, cw)
			floor = max(floor, widestGrapheme(r[i]))
		}
		floors[i] = max(floor, 1)
		if l := t.limit(name); l > 0 {
			w = min(w, l)
		}
		widths[i] = max(w, floors[i])
	}
	if budget > 0 {
		shrink(widths, floors, budget-overhead(len(widths)))
	}
	return widths, nil
}

// widestGrapheme is the width of the widest single character in s. s has already been
// validated.
func widestGrapheme(s string) int {
	plain, _ := ansi.Strip(s)
	w := 0
	for _, g := range ansi.Graphemes(plain) {
		w = max(w, g.Width)
	}
	return w
}

// shrink narrows the widest column still above its floor one step at a time until the
// sum fits avail or every column is at its floor.
func shrink(widths, floors []int, avail int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > avail {
		widest := -1
		for i, w := range widths {
			if w > floors[i] && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			return
		}
		widths[widest]--
		total--
	}
}

// cellWidth is the width of the widest hard line of s.
func cellWidth(s string) (int, error) {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		lw, err := ansi.Width(line)
		if err != nil {
			return 0, err
		}
		w = max(w, lw)
	}
	return w, nil
}

// cellLines lays s out in width columns: hard lines are kept, lines too wide are wrapped
// with words broken where needed.
func cellLines(s string, width int) ([]string, error) {
	var out []string
	for _, hard := range strings.Split(s, "\n") {
		if ansi.StringWidth(hard) <= width {
			out = append(out, hard)
			continue
		}
		seq, err := wrap.LinesFrom(hard, width, width, wrap.Options{BreakWords: true})
		if err != nil {
			return nil, err
		}
		for l := range seq {
			out = append(out, l.Text)
		}
	}
	return out, nil
}

// Render lays the table out within budget columns (zero or less for no limit) and returns
// its lines: the name, the top border, the header, a rule, the rows and the bottom border.
// With HideBorder only the name, the header and the rows remain.
// All border lines and rows have the same visible width. A table without columns renders
// nothing.
func (t *Table) Render(budget int, opts RenderOptions) ([]string, error) {
	if len(t.columns) == 0 {
		return nil, nil
	}
	theme := opts.Theme
	if theme == nil {
		theme = design.DefaultTheme()
	}
	widths, err := t.ColumnWidths(budget)
	if err != nil {
		return nil, err
	}

	b := theme.Box
	paint := func(s string) string { return design.Colorize(s, theme.Border) }
	left, right := paint(b.Left), paint(b.Right)
	if opts.HideBorder {
		left, right = " ", " "
	}
	rule := func(left, mid, right string) string {
		var sb strings.Builder
		sb.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				sb.WriteString(mid)
			}
			sb.WriteString(strings.Repeat(b.Top, w+2))
		}
		sb.WriteString(right)
		return paint(sb.String())
	}
	bottom := func() string {
		var sb strings.Builder
		sb.WriteString(b.BottomLeft)
		for i, w := range widths {
			if i > 0 {
				sb.WriteString(b.MiddleBottom)
			}
			sb.WriteString(strings.Repeat(b.Bottom, w+2))
		}
		sb.WriteString(b.BottomRight)
		return paint(sb.String())
	}

	var out []string
	if t.Name != "" && !opts.HideName {
		total := 0
		for _, w := range widths {
			total += w
		}
		total += overhead(len(widths))
		name := design.Truncate(t.Name, total)
		out = append(out, strings.TrimRight(design.Pad(design.Colorize(name, theme.TableName), total, opts.TitleAlign), " "))
	}
	if !opts.HideBorder {
		out = append(out, rule(b.TopLeft, b.MiddleTop, b.TopRight))
	}

	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = design.Colorize(c, theme.TableHeader)
	}
	lines, err := t.row(header, widths, opts.Align, left, right)
	if err != nil {
		return nil, err
	}
	out = append(out, lines...)
	if !opts.HideBorder {
		out = append(out, rule(b.MiddleLeft, b.Middle, b.MiddleRight))
	}

	for _, r := range t.rows {
		lines, err := t.row(r, widths, opts.Align, left, right)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	if !opts.HideBorder {
		out = append(out, bottom())
	}
	return out, nil
}

// row renders one logical row; left doubles as the column separator. Its height is that
// of the tallest cell and shorter cells are padded with blank lines.
func (t *Table) row(cells []string, widths []int, align design.Alignment, left, right string) ([]string, error) {
	cols := make([][]string, len(cells))
	height := 1
	for i, c := range cells {
		lines, err := cellLines(c, widths[i])
		if err != nil {
			return nil, fmt.Errorf("table %q column %q: %w", t.Name, t.columns[i], err)
		}
		cols[i] = lines
		height = max(height, len(lines))
	}
	out := make([]string, height)
	for h := range height {
		var sb strings.Builder
		sb.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				sb.WriteString(" " + left)
			}
			text := ""
			if h < len(cols[i]) {
				text = cols[i][h]
			}
			sb.WriteString(" " + design.Pad(text, w, align))
		}
		sb.WriteString(" " + right)
		out[h] = sb.String()
	}
	return out, nil
}
