// Package wrap splits styled text into lines that fit a column budget.
//
// Tokens are whitespace-delimited words. Escape sequences travel with the word they
// decorate and are never split. A line that ends inside an open style is closed with a
// reset and the next line re-opens that style, so every line is self-contained.
package wrap

import (
	"iter"
	"strings"
	"unicode"

	"github.com/dkoosis/printer/pkg/ansi"
)

// Line is one rendered screen line. Width is its visible width.
type Line struct {
	Text  string
	Width int
}

// Options tune wrapping.
type Options struct {
	// BreakWords splits tokens wider than the budget at grapheme boundaries instead of
	// placing them alone on an overlong line. Tables set it for narrow columns.
	BreakWords bool
}

type token struct {
	text  string
	width int
}

// Lines wraps text to maxWidth columns. See LinesFrom.
func Lines(text string, maxWidth int) (iter.Seq[Line], error) {
	return LinesFrom(text, maxWidth, maxWidth, Options{})
}

// LinesFrom wraps text giving the first line firstWidth columns and every later line
// maxWidth columns. It is used when output continues a partially written line.
//
// If the first token does not fit firstWidth, the first line is empty and the token starts
// the second line. With maxWidth <= 0 the input is returned as a single unchecked line.
// Text without tokens yields one empty line.
//
// The returned sequence is computed on each iteration from the same tokens, so ranging
// over it twice yields the same lines.
func LinesFrom(text string, firstWidth, maxWidth int, opts Options) (iter.Seq[Line], error) {
	if err := ansi.Validate(text); err != nil {
		return nil, err
	}
	if maxWidth <= 0 {
		line := Line{Text: text, Width: ansi.StringWidth(text)}
		return func(yield func(Line) bool) { yield(line) }, nil
	}
	toks := tokenize(text)
	firstWidth = min(max(firstWidth, 0), maxWidth)

	return func(yield func(Line) bool) {
		if len(toks) == 0 {
			yield(Line{})
			return
		}
		p := packer{budget: firstWidth, yield: yield}
		for _, tok := range toks {
			if p.lines == 0 && p.n == 0 && tok.width > firstWidth && firstWidth < maxWidth {
				if !p.emit() {
					return
				}
				p.budget = maxWidth
			}
			if p.n > 0 && p.width+1+tok.width > p.budget {
				if !p.emit() {
					return
				}
				p.budget = maxWidth
			}
			for opts.BreakWords && tok.width > p.budget {
				head, rest := split(tok, p.budget)
				p.add(head)
				if !p.emit() {
					return
				}
				p.budget = maxWidth
				tok = rest
			}
			p.add(tok)
		}
		p.emit()
	}, nil
}

// packer accumulates tokens into the current line.
type packer struct {
	yield  func(Line) bool
	budget int

	state ansi.SGRState // style in effect after the last added token
	open  string        // style in effect when the current line started
	body  strings.Builder
	width int
	n     int // tokens on the current line
	lines int // lines emitted so far
}

func (p *packer) add(tok token) {
	if p.n > 0 {
		p.body.WriteByte(' ')
		p.width++
	}
	p.body.WriteString(tok.text)
	p.width += tok.width
	p.n++
	_ = p.state.ApplyAll(tok.text)
}

func (p *packer) emit() bool {
	text := p.open + p.body.String()
	if p.state.Active() {
		text += ansi.Reset
	}
	if p.n == 0 {
		text = ""
	}
	line := Line{Text: text, Width: p.width}

	p.open = p.state.Open()
	p.body.Reset()
	p.width, p.n = 0, 0
	p.lines++
	return p.yield(line)
}

// tokenize splits text on whitespace. Escapes seen before a word attach to its front,
// escapes seen inside or directly after a word attach to it. Escapes trailing the last
// word attach to that word.
func tokenize(text string) []token {
	segs, _ := ansi.Segments(text)

	var toks []token
	var cur, pending strings.Builder
	inWord := false
	flush := func() {
		if !inWord {
			return
		}
		s := cur.String()
		toks = append(toks, token{text: s, width: ansi.StringWidth(s)})
		cur.Reset()
		inWord = false
	}

	for _, seg := range segs {
		if seg.Kind == ansi.Escape {
			if inWord {
				cur.WriteString(seg.Value)
			} else {
				pending.WriteString(seg.Value)
			}
			continue
		}
		for _, r := range seg.Value {
			if unicode.IsSpace(r) {
				flush()
				continue
			}
			if !inWord {
				cur.WriteString(pending.String())
				pending.Reset()
				inWord = true
			}
			cur.WriteRune(r)
		}
	}
	flush()

	if pending.Len() > 0 {
		if len(toks) == 0 {
			return []token{{text: pending.String()}}
		}
		toks[len(toks)-1].text += pending.String()
	}
	return toks
}

// split cuts tok after at most width columns. At least one grapheme always goes to the
// head so splitting makes progress even when a wide character exceeds width.
func split(tok token, width int) (head, rest token) {
	segs, _ := ansi.Segments(tok.text)

	var h, r strings.Builder
	used, cut := 0, false
	for _, seg := range segs {
		if seg.Kind == ansi.Escape {
			if cut {
				r.WriteString(seg.Value)
			} else {
				h.WriteString(seg.Value)
			}
			continue
		}
		for _, g := range ansi.Graphemes(seg.Value) {
			if !cut && used > 0 && used+g.Width > width {
				cut = true
			}
			if cut {
				r.WriteString(g.Value)
				continue
			}
			h.WriteString(g.Value)
			used += g.Width
		}
	}
	rs := r.String()
	return token{text: h.String(), width: used}, token{text: rs, width: ansi.StringWidth(rs)}
}
