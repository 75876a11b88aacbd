// Package design holds the visual vocabulary of the printer.
//
// This file defines themes: which style each structural element is drawn in, and which
// lipgloss border supplies the box-drawing characters for tables and boxes.
package design

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the styling of every structural element the printer draws.
type Theme struct {
	Name string

	// Aligned key/value pairs. The Dim variants are used for unimportant keys.
	Key      Style
	Value    Style
	DimKey   Style
	DimValue Style

	// Titles and their underline rule.
	Title Style
	Rule  Style

	// Tables and boxes.
	TableName   Style
	TableHeader Style
	Border      Style
	Box         lipgloss.Border

	// File size units, keyed by unit ("B", "KB", ...).
	SizeUnits map[string]Style

	// Progress bar filled segment and CLI error messages.
	Progress Style
	Error    Style
}

// UnitStyle returns the style for a file size unit, or Normal when none is configured.
func (t *Theme) UnitStyle(unit string) Style {
	if t == nil || t.SizeUnits == nil {
		return Normal
	}
	return t.SizeUnits[unit]
}

// DefaultTheme matches the original printer's palette with rounded box drawing.
func DefaultTheme() *Theme {
	return &Theme{
		Name:        "default",
		Key:         Purple,
		Value:       Green,
		DimKey:      DarkPurple,
		DimValue:    DarkGreen,
		Title:       Yellow,
		Rule:        White,
		TableName:   Yellow,
		TableHeader: Normal,
		Border:      Grey,
		Box:         lipgloss.RoundedBorder(),
		SizeUnits:   defaultSizeUnits(),
		Progress:    Green,
		Error:       Red,
	}
}

// ClassicTheme keeps the default colors but draws square corners.
func ClassicTheme() *Theme {
	t := DefaultTheme()
	t.Name = "classic"
	t.Box = lipgloss.NormalBorder()
	return t
}

// ASCIITheme draws with plain ASCII so output survives terminals and logs without
// box-drawing glyphs. Colors are kept; the printer strips them when disabled.
func ASCIITheme() *Theme {
	t := DefaultTheme()
	t.Name = "ascii"
	t.Box = lipgloss.ASCIIBorder()
	return t
}

// MonochromeTheme has no styles at all.
func MonochromeTheme() *Theme {
	return &Theme{
		Name: "monochrome",
		Box:  lipgloss.ASCIIBorder(),
	}
}

func defaultSizeUnits() map[string]Style {
	return map[string]Style{
		"B":  Yellow,
		"KB": Cyan,
		"MB": Green,
		"GB": Red,
		"TB": DarkRed,
		"PB": DarkRed,
		"EB": DarkRed,
	}
}

var themes = map[string]func() *Theme{
	"default":    DefaultTheme,
	"classic":    ClassicTheme,
	"ascii":      ASCIITheme,
	"monochrome": MonochromeTheme,
}

// ThemeNames lists the built-in themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a fresh copy of a built-in theme.
func ThemeByName(name string) (*Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	build, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return build(), nil
}
