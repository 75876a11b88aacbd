package progress

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProgress is matched by every *InvalidProgressError.
var ErrInvalidProgress = errors.New("invalid progress")

// InvalidProgressError reports a non-positive total or a negative current count.
type InvalidProgressError struct {
	Total   int64
	Current int64
}

func (e *InvalidProgressError) Error() string {
	if e.Total <= 0 {
		return fmt.Sprintf("invalid progress: total must be positive, got %d", e.Total)
	}
	return fmt.Sprintf("invalid progress: current must not be negative, got %d", e.Current)
}

func (e *InvalidProgressError) Is(target error) bool {
	return target == ErrInvalidProgress
}

// Thresholds after which a bar without a caller message comforts the user.
const (
	FirstMessageAfter  = 30 * time.Second
	SecondMessageAfter = 90 * time.Second
	ThirdMessageAfter  = 180 * time.Second
)

// Options configure a Bar.
type Options struct {
	// Width of the bar meter. Zero means DefaultBarWidth.
	Width int
	// Lying marks a bar whose numbers should not be believed.
	Lying bool
	// Frames for the animation of a bar with unknown total. Nil means Pinwheel.
	Frames []string
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// Bar is the state of one progress run: a counter, its total and the meters that draw it.
// A Bar is used by one goroutine at a time.
type Bar struct {
	total   int64
	current int64
	lying   bool

	bar     *BarMeter
	timing  *TimingMeter
	line    Composite
	started time.Time
	now     func() time.Time
}

// New returns a bar for total counts: bar meter, percentage and timing.
// A total of zero or less fails with *InvalidProgressError.
func New(total int64, opts Options) (*Bar, error) {
	if total <= 0 {
		return nil, &InvalidProgressError{Total: total}
	}
	b := newBar(total, opts)
	b.bar = NewBarMeter(total)
	if opts.Width > 0 {
		b.bar.Width = opts.Width
	}
	b.line.Meters = []Meter{b.bar, &PercentMeter{Total: total}, b.timing}
	return b, nil
}

// NewIndeterminate returns a bar for work of unknown size: an animation plus elapsed time.
func NewIndeterminate(opts Options) *Bar {
	b := newBar(0, opts)
	frames := framesOr(opts.Frames)
	// One frame per count.
	b.line.Meters = []Meter{&AnimatedMeter{Frames: frames, PerCycle: int64(len(frames))}, b.timing}
	return b
}

func newBar(total int64, opts Options) *Bar {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Bar{
		total:   total,
		lying:   opts.Lying,
		timing:  NewTimingMeter(total, now),
		started: now(),
		now:     now,
	}
}

func framesOr(frames []string) []string {
	if len(frames) == 0 {
		return Pinwheel
	}
	return frames
}

// Total returns the total count, zero for an indeterminate bar.
func (b *Bar) Total() int64 { return b.total }

// Current returns the last accepted count.
func (b *Bar) Current() int64 { return b.current }

// Fraction returns current/total in [0, 1], zero for an indeterminate bar.
func (b *Bar) Fraction() float64 {
	if b.total <= 0 {
		return 0
	}
	return float64(b.current) / float64(b.total)
}

// Percent returns the whole percentage done.
func (b *Bar) Percent() int {
	if b.total <= 0 {
		return 0
	}
	return int(b.current * 100 / b.total)
}

// Filled returns the number of done cells of the bar meter.
func (b *Bar) Filled() int {
	if b.bar == nil {
		return 0
	}
	return b.bar.Filled(b.current)
}

// Validate checks current without changing the bar.
func (b *Bar) Validate(current int64) error {
	if current < 0 {
		return &InvalidProgressError{Total: b.total, Current: current}
	}
	return nil
}

// Eval records current and renders the progress line. Counts beyond the total clamp to
// 100%. A negative count fails with *InvalidProgressError and leaves the bar unchanged.
// An empty message is replaced by a comforting one once the run takes long enough.
func (b *Bar) Eval(current int64, message string) (string, error) {
	if err := b.Validate(current); err != nil {
		return "", err
	}
	if b.total > 0 {
		current = min(current, b.total)
	}
	b.current = current
	return b.line.Eval(current, b.note(message)), nil
}

// Complete renders the bar at 100%.
func (b *Bar) Complete() string {
	line, _ := b.Eval(max(b.total, b.current), "")
	return line
}

func (b *Bar) note(message string) string {
	if message != "" {
		return " (" + message + ")"
	}
	switch elapsed := b.now().Sub(b.started); {
	case elapsed > ThirdMessageAfter:
		return " (When will it end?)"
	case elapsed > SecondMessageAfter:
		return " (Enough already!!)"
	case elapsed > FirstMessageAfter:
		return " (Still here?)"
	case b.lying:
		return " (It's lying!!!)"
	}
	return ""
}
