package magetasks

import (
	"errors"
	"fmt"
)

// linter is one lint step. A linter with an install path is optional: when its tool is
// not on PATH it is reported as skipped instead of failing.
type linter struct {
	label   string
	cmd     string
	args    []string
	install string
}

const golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

var (
	formatLinter = linter{label: "go fmt", cmd: "go", args: []string{"fmt", "./..."}}
	vetLinter    = linter{label: "go vet", cmd: "go", args: []string{"vet", "./..."}}

	staticcheckLinter = linter{
		label:   "staticcheck",
		cmd:     "staticcheck",
		args:    []string{"./..."},
		install: "honnef.co/go/tools/cmd/staticcheck@latest",
	}
	golangciLinter = linter{
		label:   "golangci-lint",
		cmd:     "golangci-lint",
		args:    []string{"run", golangciDisabled, "--timeout=5m", "./..."},
		install: "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	}
	golangciFixLinter = linter{
		label:   "golangci-lint --fix",
		cmd:     "golangci-lint",
		args:    []string{"run", "--fix", golangciDisabled, "--timeout=5m", "./..."},
		install: golangciLinter.install,
	}
)

// linters is the LintAll sequence.
var linters = []linter{formatLinter, vetLinter, staticcheckLinter, golangciLinter}

func (l linter) run() error {
	err := Run(l.label, l.cmd, l.args...)
	switch {
	case err == nil:
		return nil
	case l.install != "" && missingTool(err):
		PrintWarning(fmt.Sprintf("%s not installed (go install %s)", l.label, l.install))
		return nil
	}
	return fmt.Errorf("%s: %w", l.label, err)
}

// LintAll runs every linter, even after a failure, and joins their errors.
func LintAll() error {
	PrintH2Header("Lint")

	var errs []error
	for _, l := range linters {
		if err := l.run(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		PrintError(fmt.Sprintf("%d of %d linters failed", len(errs), len(linters)))
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat formats the code with go fmt.
func LintFormat() error { return formatLinter.run() }

// LintVet runs go vet.
func LintVet() error { return vetLinter.run() }

// LintStaticcheck runs staticcheck when installed.
func LintStaticcheck() error { return staticcheckLinter.run() }

// LintGolangci runs golangci-lint when installed.
func LintGolangci() error { return golangciLinter.run() }

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error { return golangciFixLinter.run() }
