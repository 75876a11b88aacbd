package magetasks

// QualityCheck lints, tests and builds, then prints the summary table. Lint failures are
// reported as warnings and do not fail the check.
func QualityCheck() error {
	_, err := RunSections(
		Section{Name: "Lint", Run: LintAll, Advisory: true},
		Section{Name: "Tests", Run: TestAll},
		Section{Name: "Build", Run: BuildAll},
	)
	return err
}
