package wrap

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/printer/pkg/ansi"
)

const (
	red   = "\x1b[91m"
	green = "\x1b[92m"
)

func texts(t *testing.T, text string, width int) []string {
	t.Helper()
	seq, err := Lines(text, width)
	require.NoError(t, err)
	var out []string
	for l := range seq {
		out = append(out, l.Text)
	}
	return out
}

func TestLines_PacksWordsGreedily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "hello world",
			width: 20,
			want:  []string{"hello world"},
		},
		{
			name:  "breaks before overflowing word",
			text:  "the quick brown fox jumps",
			width: 10,
			want:  []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:  "exact fit",
			text:  "abc def",
			width: 7,
			want:  []string{"abc def"},
		},
		{
			name:  "collapses and trims whitespace",
			text:  "  a \t b\n\nc  ",
			width: 80,
			want:  []string{"a b c"},
		},
		{
			name:  "long word alone and unbroken",
			text:  "a supercalifragilistic b",
			width: 8,
			want:  []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:  "wide characters count double",
			text:  "日本 語彙 ab",
			width: 6,
			want:  []string{"日本", "語彙", "ab"},
		},
		{
			name:  "empty input",
			text:  "",
			width: 10,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := texts(t, tt.text, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLines_ReturnsInputUnchanged_When_WidthNotPositive(t *testing.T) {
	t.Parallel()

	text := "  keep   all\nof it  "
	for _, w := range []int{0, -1} {
		assert.Equal(t, []string{text}, texts(t, text, w))
	}
}

func TestLines_NeverExceedsWidth_UnlessSingleTokenIs(t *testing.T) {
	t.Parallel()

	text := "Lorem ipsum " + red + "dolor sit" + "\x1b[0m amet, consectetur adipiscing elit, sed " +
		"do eiusmod 東京都 tempor incididunt ut labore et dolore magna aliqua " +
		"pneumonoultramicroscopicsilicovolcanoconiosis."

	for width := 1; width <= 40; width++ {
		seq, err := Lines(text, width)
		require.NoError(t, err)
		for l := range seq {
			w := ansi.StringWidth(l.Text)
			assert.Equal(t, w, l.Width, "reported width for %q", l.Text)
			if w > width {
				assert.NotContains(t, strings.TrimSpace(mustStrip(t, l.Text)), " ",
					"width %d: overlong line %q holds more than one token", width, l.Text)
			}
		}
	}
}

func TestLines_IsLosslessOverTokens(t *testing.T) {
	t.Parallel()

	text := "one " + green + "two three" + "\x1b[0m four  five\tsix 七八 nine"
	want := strings.Fields(mustStrip(t, text))

	for _, width := range []int{1, 3, 5, 9, 14, 100} {
		var got []string
		for _, line := range texts(t, text, width) {
			got = append(got, strings.Fields(mustStrip(t, line))...)
		}
		assert.Equal(t, want, got, "width %d", width)
	}
}

func TestLines_CarriesStyleAcrossLines(t *testing.T) {
	t.Parallel()

	got := texts(t, red+"alpha beta gamma"+ansi.Reset+" delta", 11)

	assert.Equal(t, []string{
		red + "alpha beta" + ansi.Reset,
		red + "gamma" + ansi.Reset + " delta",
	}, got)

	for _, line := range got {
		var st ansi.SGRState
		require.NoError(t, st.ApplyAll(line))
		assert.False(t, st.Active(), "line %q leaks style", line)
	}
}

func TestLines_IsRestartable(t *testing.T) {
	t.Parallel()

	seq, err := Lines("a b c d e f g h i j", 3)
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 5)

	// Stopping early must not disturb a later full pass.
	for range seq {
		break
	}
	assert.Equal(t, first, slices.Collect(seq))
}

func TestLines_Fails_When_EscapeTruncated(t *testing.T) {
	t.Parallel()

	_, err := Lines("ok \x1b[31", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ansi.ErrMalformedEscape))
}

func TestLinesFrom_UsesShorterFirstBudget(t *testing.T) {
	t.Parallel()

	seq, err := LinesFrom("aa bb cc dd", 5, 8, Options{})
	require.NoError(t, err)

	var got []string
	for l := range seq {
		got = append(got, l.Text)
	}
	assert.Equal(t, []string{"aa bb", "cc dd"}, got)
}

func TestLinesFrom_StartsEmpty_When_FirstTokenDoesNotFit(t *testing.T) {
	t.Parallel()

	seq, err := LinesFrom("abcdef gh", 3, 10, Options{})
	require.NoError(t, err)

	assert.Equal(t, []Line{{Text: "", Width: 0}, {Text: "abcdef gh", Width: 9}}, slices.Collect(seq))
}

func TestLinesFrom_BreakWords_SplitsLongTokens(t *testing.T) {
	t.Parallel()

	seq, err := LinesFrom("abcdefgh ij", 3, 3, Options{BreakWords: true})
	require.NoError(t, err)

	var got []string
	for l := range seq {
		assert.LessOrEqual(t, l.Width, 3)
		got = append(got, l.Text)
	}
	assert.Equal(t, []string{"abc", "def", "gh", "ij"}, got)
}

func TestLinesFrom_BreakWords_KeepsStyleOnEachPiece(t *testing.T) {
	t.Parallel()

	seq, err := LinesFrom(red+"abcdef"+ansi.Reset, 4, 4, Options{BreakWords: true})
	require.NoError(t, err)

	assert.Equal(t, []Line{
		{Text: red + "abcd" + ansi.Reset, Width: 4},
		{Text: red + "ef" + ansi.Reset, Width: 2},
	}, slices.Collect(seq))
}

func TestLinesFrom_BreakWords_NeverSplitsWideCharacter(t *testing.T) {
	t.Parallel()

	seq, err := LinesFrom("日本語", 3, 3, Options{BreakWords: true})
	require.NoError(t, err)

	var got []string
	for l := range seq {
		got = append(got, l.Text)
	}
	assert.Equal(t, []string{"日", "本", "語"}, got)
}

func mustStrip(t *testing.T, s string) string {
	t.Helper()
	out, err := ansi.Strip(s)
	require.NoError(t, err)
	return out
}
