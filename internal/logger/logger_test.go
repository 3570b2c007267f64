package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetLogger_returnsSameInstance(t *testing.T) {
	logger1 := GetLogger()
	logger2 := GetLogger()

	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func Test_SetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogLevel(0) })

	tests := []struct {
		name          string
		verboseCount  int
		expectedLevel zerolog.Level
	}{
		{"verbosity 0 sets error level", 0, zerolog.ErrorLevel},
		{"verbosity 1 sets warn level", 1, zerolog.WarnLevel},
		{"verbosity 2 sets info level", 2, zerolog.InfoLevel},
		{"verbosity 3 sets debug level", 3, zerolog.DebugLevel},
		{"verbosity 4 sets trace level", 4, zerolog.TraceLevel},
		{"verbosity 5+ sets trace level", 10, zerolog.TraceLevel},
		{"negative verbosity sets error level", -1, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLogLevel(tt.verboseCount)
			assert.Equal(t, tt.expectedLevel, GetLogger().GetLevel())
		})
	}
}

func Test_SetLevelName(t *testing.T) {
	t.Cleanup(func() { SetLogLevel(0) })

	require.NoError(t, SetLevelName("debug"))
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	require.NoError(t, SetLevelName(""))
	assert.Equal(t, zerolog.ErrorLevel, GetLogger().GetLevel())

	err := SetLevelName("chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func Test_New_writesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Error().Str("module", "sdschooldata").Msg("kept")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "sdschooldata")
}
