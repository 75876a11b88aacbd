package magetasks

import (
	"errors"
	"fmt"

	"github.com/dkoosis/printer/pkg/table"
)

// Section is a named task. Its Run prints its own header. An advisory section's error is
// printed as a warning and left out of the error RunSections returns.
type Section struct {
	Name     string
	Run      func() error
	Advisory bool
}

// SectionResult is the outcome of one section and the steps it ran.
type SectionResult struct {
	Name  string
	Steps []StepResult
	Err   error
}

// RunSections runs every section in order, even after a failure, then renders a summary
// table of all steps. The returned error joins the section errors.
func RunSections(sections ...Section) ([]SectionResult, error) {
	results := make([]SectionResult, 0, len(sections))
	var errs []error
	for _, s := range sections {
		first := len(steps)
		err := s.Run()
		results = append(results, SectionResult{Name: s.Name, Steps: append([]StepResult(nil), steps[first:]...), Err: err})
		switch {
		case err == nil:
		case s.Advisory:
			PrintWarning(fmt.Sprintf("%s: %v", s.Name, err))
		default:
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}

	if err := writeSummary(results); err != nil {
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}

func writeSummary(results []SectionResult) error {
	t := table.New("Summary", "section", "step", "status", "time")
	for _, r := range results {
		if len(r.Steps) == 0 {
			status := "ok"
			if r.Err != nil {
				status = "failed"
			}
			if err := t.AddValues(r.Name, "", status, ""); err != nil {
				return err
			}
			continue
		}
		for _, s := range r.Steps {
			if err := t.AddValues(r.Name, s.Label, s.Status(), s.Duration); err != nil {
				return err
			}
		}
	}
	p := out()
	if err := p.NewLine(); err != nil {
		return err
	}
	return p.WriteTable(t, table.DefaultRenderOptions())
}

// RunAll executes the build, lint and test workflow.
func RunAll() error {
	_, err := RunSections(
		Section{Name: "Build", Run: BuildAll},
		Section{Name: "Lint", Run: LintAll},
		Section{Name: "Tests", Run: TestAll},
	)
	return err
}
