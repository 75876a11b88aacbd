package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/printer/internal/config"
)

// cli runs the command with an isolated environment and returns exit code, stdout and
// stderr. Tests using it do not run in parallel: the CLI configures global logging.
func cli(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	stubs := gostub.Stub(&config.FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	t.Cleanup(stubs.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"PRINTER_NO_COLOR", "NO_COLOR", "PRINTER_WIDTH", "PRINTER_THEME", "PRINTER_DEBUG"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Table_RendersCSVFile(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nann,31\nbob,4\n")

	code, stdout, stderr := cli(t, "", "--width", "40", "--theme", "ascii", "table", path)
	require.Equal(t, 0, code, stderr)

	want := strings.Join([]string{
		"    people",
		"+------+-----+",
		"| name | age |",
		"+------+-----+",
		"| ann  | 31  |",
		"| bob  | 4   |",
		"+------+-----+",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("table output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Table_OmitsBorder_When_NoBorderSet(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nann,31\n")

	code, stdout, stderr := cli(t, "", "--width", "40", "--theme", "ascii", "table", "--no-border", path)
	require.Equal(t, 0, code, stderr)

	want := strings.Join([]string{
		"    people",
		"  name   age  ",
		"  ann    31   ",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("table output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Table_ExportsYAMLInDocumentOrder(t *testing.T) {
	path := writeFile(t, "items.yaml", "- zeta: 1\n  alpha: two\n- alpha: three\n")

	tests := []struct {
		format string
		want   string
	}{
		{format: "csv", want: "zeta,alpha\n1,two\n,three\n"},
		{format: "markdown", want: "| zeta | alpha |\n|------|-------|\n| 1    | two   |\n|      | three |\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			code, stdout, stderr := cli(t, "", "table", "--format", tt.format, path)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRun_Table_ReadsStdin(t *testing.T) {
	code, stdout, stderr := cli(t, "k,v\na,<b>\n", "table", "-f", "html", "--name", "pairs", "-")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "<center><h1>pairs</h1></center>")
	assert.Contains(t, stdout, "<td>&lt;b&gt;</td>")
}

func TestRun_Table_Fails_When_FormatUnknown(t *testing.T) {
	path := writeFile(t, "t.csv", "a\n1\n")

	code, stdout, stderr := cli(t, "", "table", "--format", "pdf", path)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `Error: usage: unknown format "pdf"`)
}

func TestRun_Size_AlignsValues(t *testing.T) {
	code, stdout, stderr := cli(t, "", "--width", "60", "size", "793", "1.5 MB", "--total")
	require.Equal(t, 0, code, stderr)

	want := fmt.Sprintf("%-30s%s\n", "793:", "    793  B") +
		fmt.Sprintf("%-30s%s\n", "1.5 MB:", "   1.50 MB") +
		fmt.Sprintf("%-30s%s\n", "total:", "   1.50 MB")
	assert.Equal(t, want, stdout)
}

func TestRun_Size_Fails_When_SizeInvalid(t *testing.T) {
	code, stdout, stderr := cli(t, "", "size", "12", "abc")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `Error: parse file size "abc"`)
}

func TestRun_Wrap_IndentsWrappedLines(t *testing.T) {
	code, stdout, stderr := cli(t, "alpha beta gamma delta\n", "--width", "12", "wrap", "--indent", "2")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "  alpha beta\n  gamma\n  delta\n", stdout)
}

func TestRun_Wrap_KeepsLines_When_WidthZero(t *testing.T) {
	text := "a line that is much longer than any sensible console width would allow for"
	code, stdout, stderr := cli(t, text, "--width", "0", "wrap")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, text+"\n", stdout)
}

func TestRun_Title(t *testing.T) {
	code, stdout, stderr := cli(t, "", "--width", "40", "title", "--case", "upper", "hello", "world")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "HELLO WORLD\n==============\n", stdout)

	code, stdout, stderr = cli(t, "", "--width", "10", "title", "--center", "ab")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "    ab\n==========\n", stdout)
}

func TestRun_Progress_FinishesAtFullBar(t *testing.T) {
	code, stdout, stderr := cli(t, "", "--width", "80", "progress", "--total", "3", "--delay", "0", "--message", "copying")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, 4, strings.Count(stdout, "\r"), "three steps and the final draw")
	assert.Contains(t, stdout, "(copying)")
	assert.Contains(t, stdout, "####################")
	assert.Contains(t, stdout, "100%")
	assert.True(t, strings.HasSuffix(stdout, "\n"))
}

func TestRun_Progress_Fails_When_TotalNotPositive(t *testing.T) {
	code, _, stderr := cli(t, "", "progress", "--total", "0", "--delay", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRun_Version(t *testing.T) {
	code, stdout, stderr := cli(t, "", "version")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, fmt.Sprintf("%-10s%s\n", "version:", "dev"))
	assert.Contains(t, stdout, "commit:")
}

func TestRun_Fails_When_ThemeUnknown(t *testing.T) {
	code, stdout, stderr := cli(t, "", "--theme", "neon", "version")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `unknown theme "neon"`)
}

func TestRun_Fails_When_ArgumentsMissing(t *testing.T) {
	code, _, stderr := cli(t, "", "table")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "accepts 1 arg(s), received 0")
}
