package magetasks

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintAll_SkipsOptionalLinters_When_NotInstalled(t *testing.T) {
	buf := captureConsole(t, 200)
	f := stubTasks(t, map[string]error{"staticcheck": exec.ErrNotFound, "golangci-lint": exec.ErrNotFound})

	require.NoError(t, LintAll())

	require.Len(t, f.calls, 4)
	assert.Equal(t, []string{"go", "fmt", "./..."}, f.calls[0])
	assert.Equal(t, []string{"go", "vet", "./..."}, f.calls[1])

	out := buf.String()
	assert.Contains(t, out, "! staticcheck not installed (go install honnef.co/go/tools/cmd/staticcheck@latest)")
	assert.Contains(t, out, "! golangci-lint not installed")
	assert.Contains(t, out, "✔ All linters passed")
}

func TestLintAll_RunsEveryLinter_When_OneFails(t *testing.T) {
	buf := captureConsole(t, 200)
	f := stubTasks(t, map[string]error{"staticcheck": errExit})

	err := LintAll()

	require.Error(t, err)
	assert.ErrorIs(t, err, errExit)
	assert.Contains(t, err.Error(), "staticcheck:")
	assert.Len(t, f.calls, 4)
	assert.Contains(t, buf.String(), "✘ 1 of 4 linters failed")
}

func TestLintAll_Fails_When_RequiredToolMissing(t *testing.T) {
	captureConsole(t, 200)
	stubTasks(t, map[string]error{"go": exec.ErrNotFound})

	err := LintAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "go fmt:")
	assert.Contains(t, err.Error(), "go vet:")
}

func TestLintGolangciFix_PassesFixFlag(t *testing.T) {
	captureConsole(t, 200)
	f := stubTasks(t, nil)

	require.NoError(t, LintGolangciFix())

	require.Len(t, f.calls, 1)
	assert.Equal(t, "golangci-lint run --fix", strings.Join(f.calls[0][:3], " "))
}

func TestQualityCheck_TreatsLintFailuresAsWarnings(t *testing.T) {
	buf := captureConsole(t, 200)
	f := stubTasks(t, map[string]error{"golangci-lint": errExit})

	require.NoError(t, QualityCheck())

	var cmds []string
	for _, c := range f.calls {
		cmds = append(cmds, strings.Join(c[:2], " "))
	}
	assert.Equal(t, []string{"go fmt", "go vet", "staticcheck ./...", "golangci-lint run", "go test", "go build"}, cmds)

	out := buf.String()
	assert.Contains(t, out, "! Lint: golangci-lint: exit status 1")
	assert.Contains(t, out, "Summary")
}

func TestQualityCheck_Fails_When_TestsFail(t *testing.T) {
	captureConsole(t, 200)
	stubTasks(t, map[string]error{"go": errExit})

	err := QualityCheck()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tests:")
	assert.Contains(t, err.Error(), "Build:")
	assert.NotContains(t, err.Error(), "Lint:")
}
