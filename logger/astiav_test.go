package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevelAstiavRoundTrip(t *testing.T) {
	t.Parallel()

	for _, level := range []Level{LevelFatal, LevelPanic, LevelError, LevelWarning, LevelInfo, LevelDebug, LevelTrace} {
		require.Equal(t, level, LogLevelFromAstiav(LogLevelToAstiav(level)), "%s", level)
	}
}
