package design

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/printer/pkg/ansi"
)

func TestColorize_WrapsAndResets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\x1b[93mtest\x1b[0m", Colorize("test", Yellow))
	assert.Equal(t, "plain", Colorize("plain", Normal))
}

func TestColorize_RestoresOuterStyle_When_Nested(t *testing.T) {
	t.Parallel()

	red, yellow := Red.Sequence(), Yellow.Sequence()

	got := Red.Render("a" + Yellow.Render("b") + "c")
	assert.Equal(t, red+"a"+yellow+"b"+ansi.Reset+red+"c"+ansi.Reset, got)

	// An inner span at the very end needs no re-open.
	got = Red.Render("test"+Yellow.Render("test")) + "test"
	assert.Equal(t, red+"test"+yellow+"test"+ansi.Reset+"test", got)
}

func TestColorize_NeverLeaksStyle(t *testing.T) {
	t.Parallel()

	samples := []string{
		Bold.Render("x"),
		Red.Render(Green.Render("g") + Blue.Render("b")),
		Underline.With(Cyan).Render("u" + Purple.Render("p") + "u"),
	}
	for _, s := range samples {
		var st ansi.SGRState
		require.NoError(t, st.ApplyAll(s))
		assert.False(t, st.Active(), "style leaked from %q", s)
	}
}

func TestStyle_Sequence_OrdersAttributesBeforeColor(t *testing.T) {
	t.Parallel()

	s := Red.With(Underline).With(Bold)
	assert.Equal(t, "\x1b[1;4;91m", s.Sequence())
	assert.Equal(t, s.Sequence(), Bold.With(Underline).With(Red).Sequence())
	assert.Equal(t, "", Normal.Sequence())
}

func TestStyle_With_LaterColorWins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Green, Red.With(Green))
	assert.Equal(t, Red, Red.With(Normal))
	assert.Equal(t, "bold+green", Bold.With(Red).With(Green).String())
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec string
		want Style
	}{
		{spec: "red", want: Red},
		{spec: "Dark-Cyan", want: DarkCyan},
		{spec: "bold+red", want: Bold.With(Red)},
		{spec: "underline, grey", want: Underline.With(Grey)},
		{spec: "red blue", want: Blue},
		{spec: "", want: Normal},
		{spec: "normal", want: Normal},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStyle(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyle_Fails_When_NameUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseStyle("bold+magenta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedStyle))

	var unsupported *UnsupportedStyleError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "magenta", unsupported.Name)
}

func TestStyle_TextRoundTrip(t *testing.T) {
	t.Parallel()

	want := Italic.With(DarkBlue)
	text, err := want.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "italic+dark_blue", string(text))

	var got Style
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, want, got)
}
