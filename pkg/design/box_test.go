package design

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/printer/pkg/ansi"
)

func TestBox_Lines_SizesToWidestLine(t *testing.T) {
	t.Parallel()

	got := NewBox(MonochromeTheme()).AddLines("one", "three").Lines()

	assert.Equal(t, []string{
		"+-------+",
		"| one   |",
		"| three |",
		"+-------+",
	}, got)
}

func TestBox_Lines_DrawsTitleAndFooter(t *testing.T) {
	t.Parallel()

	got := NewBox(MonochromeTheme()).Title("Sum").AddLine("a").Footer("total").Lines()

	assert.Equal(t, []string{
		"+-------+",
		"| Sum   |",
		"| a     |",
		"+-------+",
		"| total |",
		"+-------+",
	}, got)
}

func TestBox_Width_TruncatesContent(t *testing.T) {
	t.Parallel()

	got := NewBox(MonochromeTheme()).Width(8).AddLine("abcdefgh").Lines()

	for _, l := range got {
		assert.Equal(t, 8, ansi.StringWidth(l), "line %q", l)
	}
	assert.Equal(t, "| abcd |", got[1])
}

func TestBox_AllLinesSameWidth_When_Styled(t *testing.T) {
	t.Parallel()

	out := RenderBox(DefaultTheme(), "Title", Red.Render("日本"), "plain text")
	lines := strings.Split(out, "\n")

	want := ansi.StringWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, want, ansi.StringWidth(l), "line %q", l)
	}
	assert.True(t, strings.HasPrefix(lines[0], Grey.Sequence()), "border drawn in theme border style")
}
