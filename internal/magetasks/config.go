package magetasks

import (
	"os"
	"path/filepath"

	"github.com/dkoosis/printer/printer"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/printer"

	// BinPath is the output path for built binaries.
	BinPath = "./bin/printer"

	// MainPackage is the package BuildAll compiles.
	MainPackage = "./cmd/printer"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// console receives all task output. Nil means printer.Default.
var console *printer.Printer

// SetConsole directs task output to p and returns the previous console.
func SetConsole(p *printer.Printer) *printer.Printer {
	prev := console
	console = p
	return prev
}

func out() *printer.Printer {
	if console == nil {
		return printer.Default()
	}
	return console
}

// Initialize sets up the magetasks package.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}

	// Ensure bin directory exists
	binDir := filepath.Join(ProjectRoot, "bin")
	return os.MkdirAll(binDir, 0o750)
}
