// Package filesize formats byte counts for humans.
package filesize

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dkoosis/printer/pkg/design"
)

// FileSize is an immutable byte count.
type FileSize int64

// Common sizes.
const (
	Byte     FileSize = 1
	KiloByte          = 1024 * Byte
	MegaByte          = 1024 * KiloByte
	GigaByte          = 1024 * MegaByte
	TeraByte          = 1024 * GigaByte
	PetaByte          = 1024 * TeraByte
	ExaByte           = 1024 * PetaByte
)

type unit struct {
	name string
	size FileSize
}

// units in ascending order. Every unit is 1024 times the previous one.
var units = []unit{
	{"B", Byte}, {"KB", KiloByte}, {"MB", MegaByte}, {"GB", GigaByte},
	{"TB", TeraByte}, {"PB", PetaByte}, {"EB", ExaByte},
}

// ErrDivideByZero is returned by Div.
var ErrDivideByZero = errors.New("file size divided by zero")

// Parse reads sizes such as "1,600 KB", "1.5mb" or "793". Commas are ignored, the unit
// suffix is case-insensitive and a missing suffix means bytes. Fractional results are
// truncated to whole bytes.
func Parse(s string) (FileSize, error) {
	clean := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	mult := Byte
	for i := len(units) - 1; i >= 0; i-- {
		suffix := strings.ToLower(units[i].name)
		if strings.HasSuffix(clean, suffix) {
			mult = units[i].size
			clean = strings.TrimSpace(strings.TrimSuffix(clean, suffix))
			break
		}
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse file size %q: %w", s, err)
	}
	v := n * float64(mult)
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= math.MaxInt64 {
		return 0, fmt.Errorf("parse file size %q: out of range", s)
	}
	return FileSize(v), nil
}

// MustParse is Parse for constants; it panics on error.
func MustParse(s string) FileSize {
	fs, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return fs
}

// Bytes returns the size in bytes.
func (fs FileSize) Bytes() int64 { return int64(fs) }

// KiloBytes returns the number of whole kilobytes.
func (fs FileSize) KiloBytes() int64 { return int64(fs / KiloByte) }

// MegaBytes returns the number of whole megabytes.
func (fs FileSize) MegaBytes() int64 { return int64(fs / MegaByte) }

// Add returns fs + other.
func (fs FileSize) Add(other FileSize) FileSize { return fs + other }

// Sub returns fs - other.
func (fs FileSize) Sub(other FileSize) FileSize { return fs - other }

// Mul scales fs, truncating to whole bytes.
func (fs FileSize) Mul(factor float64) FileSize {
	return FileSize(float64(fs) * factor)
}

// Div divides fs, truncating to whole bytes.
func (fs FileSize) Div(divisor float64) (FileSize, error) {
	if divisor == 0 {
		return 0, ErrDivideByZero
	}
	return FileSize(float64(fs) / divisor), nil
}

// parts returns the formatted magnitude and unit name, e.g. ("1.50", "KB").
// Bytes print as integers, larger units with two decimals. Negative sizes keep their sign.
func (fs FileSize) parts() (string, string) {
	sign := ""
	mag := uint64(fs)
	if fs < 0 {
		sign = "-"
		mag = uint64(-fs)
		if fs == math.MinInt64 {
			mag = uint64(math.MaxInt64) + 1
		}
	}
	if mag < uint64(KiloByte) {
		return sign + strconv.FormatUint(mag, 10), "B"
	}

	i := 1
	for i < len(units)-1 && mag >= uint64(units[i+1].size) {
		i++
	}
	num := strconv.FormatFloat(float64(mag)/float64(units[i].size), 'f', 2, 64)
	// 1023.999 KB rounds to "1024.00"; show it as the next unit instead.
	if num == "1024.00" && i < len(units)-1 {
		i++
		num = "1.00"
	}
	return sign + num, units[i].name
}

// Unit returns the unit String would use.
func (fs FileSize) Unit() string {
	_, u := fs.parts()
	return u
}

// String formats the size with the largest unit whose mantissa is at least 1:
// "0 B", "793 B", "1.00 KB", "-1.50 MB".
func (fs FileSize) String() string {
	num, u := fs.parts()
	return num + " " + u
}

// Pretty formats the size right-aligned in at least minWidth columns with the unit padded
// to minUnitWidth, so sizes line up in a column:
//
//	793  B
//	100 KB
//
// The unit is colored with the theme's unit style. A nil theme leaves it plain.
func (fs FileSize) Pretty(minWidth, minUnitWidth int, theme *design.Theme) string {
	num, u := fs.parts()
	padded := design.PadLeft(u, minUnitWidth)
	plain := num + " " + padded
	lead := ""
	if n := minWidth - len(plain); n > 0 {
		lead = strings.Repeat(" ", n)
	}
	return lead + num + " " + design.Colorize(padded, theme.UnitStyle(u))
}

// PrettyPrint writes Pretty to w.
func (fs FileSize) PrettyPrint(w io.Writer, minWidth, minUnitWidth int, theme *design.Theme) error {
	_, err := io.WriteString(w, fs.Pretty(minWidth, minUnitWidth, theme))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (fs FileSize) MarshalText() ([]byte, error) {
	return []byte(fs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so config and input files may say
// "1.5 MB".
func (fs *FileSize) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*fs = v
	return nil
}
