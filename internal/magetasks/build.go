package magetasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// gitOutput runs git and returns its trimmed output. Tests replace it.
var gitOutput = func(args ...string) (string, error) {
	return sh.Output("git", args...)
}

// BuildAll builds all binaries
func BuildAll() error {
	PrintH2Header("Build")

	version := gitValue("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitValue("unknown", "rev-parse", "--short", "HEAD")
	date := now().UTC().Format(time.RFC3339)

	if err := Run("go build", "go", "build", "-ldflags", ldflags(version, commit, date), "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}

	PrintSuccess(fmt.Sprintf("Built: %s (%s)", BinPath, version))
	return nil
}

func ldflags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Clean removes build artifacts
func Clean() error {
	PrintH2Header("Clean")

	if err := sh.Rm("bin"); err != nil {
		return err
	}
	_ = Run("go clean", "go", "clean", "-cache")

	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitValue(fallback string, args ...string) string {
	out, err := gitOutput(args...)
	if err != nil {
		return fallback
	}
	if s := strings.TrimSpace(out); s != "" {
		return s
	}
	return fallback
}
