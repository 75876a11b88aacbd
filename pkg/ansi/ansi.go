// Package ansi recognizes terminal escape sequences and measures the visible width of text
// that contains them.
//
// It is the only place in the module that knows what an escape sequence looks like.
// Wrapping, padding, tables and titles all measure through Width and split through
// Segments so their notion of "visible" never drifts apart.
package ansi

import (
	"errors"
	"fmt"
	"strings"
)

// Escape sequence building blocks.
const (
	ESC = '\x1b'
	CSI = "\x1b["

	// Reset clears every SGR attribute.
	Reset = "\x1b[0m"

	// ClearToEOL erases from the cursor to the end of the line.
	ClearToEOL = "\x1b[K"

	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"
)

// ErrMalformedEscape is matched by every *MalformedEscapeError.
var ErrMalformedEscape = errors.New("malformed escape sequence")

// MalformedEscapeError reports an escape sequence that was opened but never terminated.
type MalformedEscapeError struct {
	Offset int    // byte offset of the ESC that opened the sequence
	Reason string // short description, e.g. "truncated CSI"
}

func (e *MalformedEscapeError) Error() string {
	return fmt.Sprintf("malformed escape sequence at byte %d: %s", e.Offset, e.Reason)
}

// Is lets errors.Is(err, ErrMalformedEscape) match.
func (e *MalformedEscapeError) Is(target error) bool {
	return target == ErrMalformedEscape
}

// SegmentKind distinguishes printable text from escape sequences.
type SegmentKind int

const (
	Text SegmentKind = iota
	Escape
)

// Segment is a run of either printable text or exactly one escape sequence.
type Segment struct {
	Kind   SegmentKind
	Value  string
	Offset int // byte offset in the scanned string
}

// Segments splits s into alternating text runs and escape sequences.
// Concatenating the Values of the result yields s again.
func Segments(s string) ([]Segment, error) {
	var segs []Segment
	textStart := 0
	i := 0
	for i < len(s) {
		if s[i] != ESC {
			i++
			continue
		}
		end, err := scanEscape(s, i)
		if err != nil {
			return nil, err
		}
		if i > textStart {
			segs = append(segs, Segment{Kind: Text, Value: s[textStart:i], Offset: textStart})
		}
		segs = append(segs, Segment{Kind: Escape, Value: s[i:end], Offset: i})
		i = end
		textStart = end
	}
	if textStart < len(s) {
		segs = append(segs, Segment{Kind: Text, Value: s[textStart:], Offset: textStart})
	}
	return segs, nil
}

// Strip returns s with every escape sequence removed.
func Strip(s string) (string, error) {
	if strings.IndexByte(s, ESC) < 0 {
		return s, nil
	}
	segs, err := Segments(s)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, seg := range segs {
		if seg.Kind == Text {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String(), nil
}

// Validate reports whether every escape sequence in s is complete.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] != ESC {
			continue
		}
		end, err := scanEscape(s, i)
		if err != nil {
			return err
		}
		i = end - 1
	}
	return nil
}

// scanEscape returns the end offset (exclusive) of the escape sequence starting at s[i].
func scanEscape(s string, i int) (int, error) {
	if i+1 >= len(s) {
		return 0, &MalformedEscapeError{Offset: i, Reason: "lone ESC"}
	}
	switch b := s[i+1]; {
	case b == '[':
		for j := i + 2; j < len(s); j++ {
			c := s[j]
			switch {
			case c >= 0x40 && c <= 0x7e:
				return j + 1, nil
			case c >= 0x20 && c <= 0x3f:
				continue
			default:
				return 0, &MalformedEscapeError{Offset: i, Reason: fmt.Sprintf("unterminated CSI (byte %#x)", c)}
			}
		}
		return 0, &MalformedEscapeError{Offset: i, Reason: "truncated CSI"}
	case b == ']':
		for j := i + 2; j < len(s); j++ {
			switch s[j] {
			case '\a':
				return j + 1, nil
			case ESC:
				if j+1 < len(s) && s[j+1] == '\\' {
					return j + 2, nil
				}
				return 0, &MalformedEscapeError{Offset: i, Reason: "unterminated OSC"}
			}
		}
		return 0, &MalformedEscapeError{Offset: i, Reason: "truncated OSC"}
	case b >= 0x20 && b <= 0x2f:
		// nF: intermediates then one final byte.
		for j := i + 2; j < len(s); j++ {
			c := s[j]
			if c >= 0x20 && c <= 0x2f {
				continue
			}
			if c >= 0x30 && c <= 0x7e {
				return j + 1, nil
			}
			return 0, &MalformedEscapeError{Offset: i, Reason: "unterminated ESC sequence"}
		}
		return 0, &MalformedEscapeError{Offset: i, Reason: "truncated ESC sequence"}
	case b >= 0x30 && b <= 0x7e:
		return i + 2, nil
	default:
		return 0, &MalformedEscapeError{Offset: i, Reason: fmt.Sprintf("invalid byte %#x after ESC", b)}
	}
}
