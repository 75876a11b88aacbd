package printer

import (
	"errors"

	"github.com/dkoosis/printer/pkg/ansi"
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/pkg/progress"
)

var (
	// ErrSessionClosed is returned by a progress session used after Finish or Close.
	ErrSessionClosed = errors.New("printer: progress session closed")
	// ErrNilBar is returned by StartProgress without a bar.
	ErrNilBar = errors.New("printer: progress session needs a bar")
)

// ProgressSession owns the current console line while a progress bar redraws it in
// place. Until Finish or Close, every other write on the printer fails with ErrLineBusy.
type ProgressSession struct {
	p      *Printer
	bar    *progress.Bar
	drawn  bool
	closed bool
}

// StartProgress acquires the console line for bar. A line left open by earlier writes
// is terminated first. Only one session may be active per printer.
func (p *Printer) StartProgress(bar *progress.Bar) (*ProgressSession, error) {
	if bar == nil {
		return nil, ErrNilBar
	}
	if p.session != nil {
		return nil, ErrLineBusy
	}
	if p.inLine {
		if err := p.newline(); err != nil {
			return nil, err
		}
	}
	s := &ProgressSession{p: p, bar: bar}
	p.session = s
	p.log.Debug().Int64("total", bar.Total()).Msg("progress session started")
	return s, nil
}

// Bar returns the session's bar.
func (s *ProgressSession) Bar() *progress.Bar { return s.bar }

// Eval records current and redraws the line. An invalid count fails with
// *progress.InvalidProgressError before anything is drawn.
func (s *ProgressSession) Eval(current int64, message string) error {
	if s.closed {
		return ErrSessionClosed
	}
	line, err := s.bar.Eval(current, message)
	if err != nil {
		return err
	}
	return s.draw(line)
}

// draw rewrites the current line: carriage return, prefix, bar, clear to end of line.
// The bar is truncated to the budget so the line never wraps, which would break the
// carriage return.
func (s *ProgressSession) draw(line string) error {
	p := s.p
	if b := p.Budget(); b > 0 {
		line = design.Truncate(line, b)
	}
	s.drawn = true
	if err := p.raw("\r" + p.Prefix()); err != nil {
		return err
	}
	if err := p.emit(design.Colorize(line, p.theme.Progress)); err != nil {
		return err
	}
	p.sgr = ansi.SGRState{}
	p.inLine = true
	p.col = p.prefixWidth() + ansi.StringWidth(line)
	return p.raw(ansi.ClearToEOL)
}

// Finish draws the bar at 100%, ends the line and releases it.
func (s *ProgressSession) Finish() error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.draw(s.bar.Complete()); err != nil {
		return err
	}
	s.p.log.Debug().Msg("progress session finished")
	return s.release()
}

// Close releases the line without completing the bar. A drawn line is terminated so
// later output starts on a fresh line. Closing twice is a no-op.
func (s *ProgressSession) Close() error {
	if s.closed {
		return nil
	}
	return s.release()
}

func (s *ProgressSession) release() error {
	s.closed = true
	s.p.session = nil
	if !s.drawn {
		return nil
	}
	return s.p.newline()
}
