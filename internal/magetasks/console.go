package magetasks

import (
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/printer"
)

// PrintH1Header prints a centered top-level header.
func PrintH1Header(title string) {
	p := out()
	_ = p.NewLine()
	_ = p.WriteLine("")
	_ = p.WriteCenteredTitle(title, printer.TitleOptions{Case: printer.CaseUpper})
	_ = p.WriteLine("")
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	p := out()
	_ = p.NewLine()
	_ = p.WriteLine("")
	_ = p.WriteTitle(title, printer.TitleOptions{})
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	printMarked("✔", msg, out().Theme().Value)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	printMarked("!", msg, design.Yellow)
}

// PrintError prints an error message.
func PrintError(msg string) {
	printMarked("✘", msg, out().Theme().Error)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	printMarked("i", msg, out().Theme().DimValue)
}

// printMarked writes mark and msg, wrapping msg under itself.
func printMarked(mark, msg string, style design.Style) {
	p := out()
	_, _ = p.WriteString(style.Render(mark) + " ")
	_ = p.Group(printer.GroupOptions{Indent: 2, AddLine: true}, func() error {
		_, err := p.WriteString(msg)
		return err
	})
}
