package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/sh"

	"github.com/dkoosis/printer/printer"
)

// runCmd runs a command with its output on the console. Tests replace it.
var runCmd = sh.RunV

// now is the clock used for step timings.
var now = time.Now

// StepResult records one command run by Run.
type StepResult struct {
	Label    string
	Duration time.Duration
	Err      error
}

// Status is "ok", "skipped" for a missing tool, or "failed".
func (r StepResult) Status() string {
	switch {
	case r.Err == nil:
		return "ok"
	case missingTool(r.Err):
		return "skipped"
	}
	return "failed"
}

var steps []StepResult

// missingTool reports whether err means the executable was never started. sh formats
// that failure with %v, so past exec.ErrNotFound only the message is left. An error
// carrying an exit status always comes from a command that ran.
func missingTool(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var exit interface{ ExitStatus() int }
	if errors.As(err, &exit) {
		return false
	}
	return strings.Contains(err.Error(), exec.ErrNotFound.Error())
}

// Run executes cmd with args, then writes the label with its status and duration as an
// aligned line. The result is recorded for the summary of RunSections.
func Run(label, cmd string, args ...string) error {
	start := now()
	err := runCmd(cmd, args...)
	r := StepResult{Label: label, Duration: now().Sub(start).Round(time.Millisecond), Err: err}
	steps = append(steps, r)

	p := out()
	status := fmt.Sprintf("%s (%s)", r.Status(), r.Duration)
	switch r.Status() {
	case "failed":
		_ = p.WriteAligned(label, p.Theme().Error.Render(status), printer.AlignOptions{})
	case "skipped":
		_ = p.WriteAligned(label, status, printer.AlignOptions{Dim: true})
	default:
		_ = p.WriteAligned(label, status, printer.AlignOptions{})
	}
	return err
}
