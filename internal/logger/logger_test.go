package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Info("Acquisition", "hidden: year=%d", 2016)
	l.Warn("FullText", "MISSING - proposition %d has no full-text link", 42)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[WARN] [FullText] MISSING - proposition 42 has no full-text link")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, LevelWarn, ParseLevel("warn"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("X", "nothing %s", "here")
	l.SetLogLevel(LevelDebug)
	l.Debug("X", "still discarded")
}
