package printer

import (
	"errors"
	"strings"

	"github.com/dkoosis/printer/pkg/design"
)

// ErrGroupUnderflow is matched by every *GroupUnderflowError.
var ErrGroupUnderflow = errors.New("group underflow")

// GroupUnderflowError reports ExitGroup without a matching EnterGroup.
type GroupUnderflowError struct{}

func (e *GroupUnderflowError) Error() string {
	return "printer: exit group without matching enter"
}

func (e *GroupUnderflowError) Is(target error) bool {
	return target == ErrGroupUnderflow
}

// Group is one frame of the indentation stack.
type Group struct {
	Indent int
	Color  design.Style // zero for no color
}

// GroupOptions configure a scoped group.
type GroupOptions struct {
	// Indent in columns. Zero uses the printer's default indent.
	Indent int
	// Color applied to everything written inside the group.
	Color design.Style
	// AddLine terminates a line left open inside the group when it exits.
	AddLine bool
}

// EnterGroup pushes a group. Lines started while it is active are indented by indent
// more columns and written in color when it is set.
func (p *Printer) EnterGroup(indent int, color design.Style) {
	p.groups = append(p.groups, Group{Indent: max(indent, 0), Color: color})
}

// ExitGroup pops the innermost group. With no group active it fails with
// *GroupUnderflowError and changes nothing.
func (p *Printer) ExitGroup() error {
	if len(p.groups) == 0 {
		p.log.Debug().Msg("exit group on empty stack")
		return &GroupUnderflowError{}
	}
	p.groups = p.groups[:len(p.groups)-1]
	return nil
}

// Group runs fn inside a group. The group is exited however fn returns, including by
// panic.
func (p *Printer) Group(opts GroupOptions, fn func() error) (err error) {
	indent := opts.Indent
	if indent == 0 {
		indent = p.cfg.Indent
	}
	p.EnterGroup(indent, opts.Color)
	defer func() {
		exitErr := p.ExitGroup()
		if err == nil {
			err = exitErr
		}
		if opts.AddLine && p.inLine && p.session == nil {
			if nlErr := p.newline(); err == nil {
				err = nlErr
			}
		}
	}()
	return fn()
}

// Depth returns the number of active groups.
func (p *Printer) Depth() int {
	return len(p.groups)
}

// Groups returns a copy of the active groups, outermost first.
func (p *Printer) Groups() []Group {
	return append([]Group(nil), p.groups...)
}

// Prefix returns the indentation of the active groups, outer to inner, in the innermost
// group color when colors are on. It depends only on the current stack.
func (p *Printer) Prefix() string {
	n := p.prefixWidth()
	if n == 0 {
		return ""
	}
	spaces := strings.Repeat(" ", n)
	if !p.cfg.Colors {
		return spaces
	}
	return design.Colorize(spaces, p.groupColor())
}

func (p *Printer) prefixWidth() int {
	n := 0
	for _, g := range p.groups {
		n += g.Indent
	}
	return n
}

// groupColor returns the color of the innermost group that sets one.
func (p *Printer) groupColor() design.Style {
	for i := len(p.groups) - 1; i >= 0; i-- {
		if !p.groups[i].Color.IsZero() {
			return p.groups[i].Color
		}
	}
	return design.Normal
}
