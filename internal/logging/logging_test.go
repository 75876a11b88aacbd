package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{"negative is warn", -1, zerolog.WarnLevel},
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LevelFor(tt.verbosity))
		})
	}
}

// Setup mutates global state, so these tests do not run in parallel.
func TestSetup_WritesComponentEvents_When_LevelEnabled(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	Setup(1, &buf, true)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger := Component("table")
	logger.Info().Msg("rendered")
	logger.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "component=table")
	assert.NotContains(t, out, "hidden")
}

func TestOperationStart_LogsBothEnds(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := OperationStart(logger, "render")
	done()

	out := buf.String()
	assert.Contains(t, out, `"message":"Operation started"`)
	assert.Contains(t, out, `"message":"Operation completed"`)
	assert.Contains(t, out, `"duration"`)
}
