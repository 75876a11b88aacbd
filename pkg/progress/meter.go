// Package progress renders progress meters as single lines of text.
//
// Meters are pure: Eval maps a current count to a string. Bar combines meters with
// timing and the validation rules of a progress session. Drawing the line in place is the
// printer's job.
package progress

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Meter renders one piece of a progress line for the given count.
type Meter interface {
	Eval(current int64) string
}

// Animation frames.
var (
	Pinwheel = []string{"-", "\\", "|", "/", "-", "\\", "|", "/"}
	Pacman   = []string{"(", "(", "C", "C", "G", "C", "C"}
	Sticks   = []string{"\\/", "||", "/\\", "||"}
	Ping     = []string{
		"|        ",
		" /       ",
		"  -      ",
		"   \\     ",
		"    |    ",
		"     /   ",
		"      -  ",
		"       \\ ",
		"        |",
		"       \\ ",
		"      -  ",
		"     /   ",
		"    |    ",
		"   \\     ",
		"  -      ",
		" /       ",
	}
)

// FramesByName maps animation names to frames.
var FramesByName = map[string][]string{
	"pinwheel": Pinwheel,
	"pacman":   Pacman,
	"sticks":   Sticks,
	"ping":     Ping,
}

// BarMeter draws a fixed-width bar: Before for the remaining part, After for the done part.
type BarMeter struct {
	Total  int64
	Width  int
	Before string
	After  string
}

// DefaultBarWidth is the bar width used when none is configured.
const DefaultBarWidth = 20

// NewBarMeter returns a bar of DefaultBarWidth drawn with '-' and '#'.
func NewBarMeter(total int64) *BarMeter {
	return &BarMeter{Total: total, Width: DefaultBarWidth, Before: "-", After: "#"}
}

// Filled returns the number of done cells: floor(current * width / total), capped at width.
func (m *BarMeter) Filled(current int64) int {
	if m.Total <= 0 || current <= 0 {
		return 0
	}
	n := current * int64(m.Width) / m.Total
	return int(min(n, int64(m.Width)))
}

func (m *BarMeter) Eval(current int64) string {
	n := m.Filled(current)
	return strings.Repeat(m.After, n) + strings.Repeat(m.Before, m.Width-n)
}

// PercentMeter shows the integer percentage right-aligned in four columns.
type PercentMeter struct {
	Total int64
}

func (m *PercentMeter) Eval(current int64) string {
	pct := int64(0)
	if m.Total > 0 {
		pct = min(current*100/m.Total, 100)
	}
	return fmt.Sprintf("%3d%%", pct)
}

// AnimatedMeter cycles through Frames once every PerCycle counts.
// It needs no total, so it serves progress of unknown length.
type AnimatedMeter struct {
	Frames   []string
	PerCycle int64
}

// NewAnimatedMeter cycles once per tenth of total, or once per count when total is unknown.
func NewAnimatedMeter(total int64, frames []string) *AnimatedMeter {
	if len(frames) == 0 {
		frames = Pinwheel
	}
	return &AnimatedMeter{Frames: frames, PerCycle: max(total/10, 1)}
}

func (m *AnimatedMeter) Eval(current int64) string {
	if len(m.Frames) == 0 {
		return ""
	}
	per := max(m.PerCycle, 1)
	ratio := float64(current%per) / float64(per)
	pos := int(math.Round(ratio*float64(len(m.Frames)))) % len(m.Frames)
	return m.Frames[pos]
}

// TimingMeter reports elapsed time and an estimate of the time left, extrapolated from
// the average time per count so far. Times show as MM:SS, switching to HH:MM:SS for the
// rest of the run once either value reaches an hour.
type TimingMeter struct {
	Total int64 // zero when unknown; the estimate then shows "?"
	Now   func() time.Time

	start time.Time
	hours bool
}

// NewTimingMeter starts timing now. A nil now uses time.Now.
func NewTimingMeter(total int64, now func() time.Time) *TimingMeter {
	if now == nil {
		now = time.Now
	}
	return &TimingMeter{Total: total, Now: now, start: now()}
}

// Elapsed returns the time since the meter started.
func (m *TimingMeter) Elapsed() time.Duration {
	return m.Now().Sub(m.start)
}

func (m *TimingMeter) Eval(current int64) string {
	elapsed := m.Elapsed()
	left, known := time.Duration(0), false
	if m.Total > 0 && current > 0 {
		perUnit := elapsed / time.Duration(current)
		left = perUnit * time.Duration(max(m.Total-current, 0))
		known = true
	}
	if elapsed >= time.Hour || left >= time.Hour {
		m.hours = true
	}
	leftStr := "?"
	if known {
		leftStr = m.clock(left)
	}
	return fmt.Sprintf("elapsed: %5s left: %5s", m.clock(elapsed), leftStr)
}

func (m *TimingMeter) clock(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	h, mins, s := secs/3600, secs/60%60, secs%60
	if m.hours {
		return fmt.Sprintf("%02d:%02d:%02d", h, mins, s)
	}
	return fmt.Sprintf("%02d:%02d", mins, s)
}

// Composite joins several meters with single spaces and appends a message.
type Composite struct {
	Meters []Meter
}

func (c *Composite) Eval(current int64, message string) string {
	parts := make([]string, len(c.Meters))
	for i, m := range c.Meters {
		parts[i] = m.Eval(current)
	}
	return strings.Join(parts, " ") + message
}
