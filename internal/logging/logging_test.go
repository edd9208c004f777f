package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	old := level
	defer SetLogLevel(old)

	var buf bytes.Buffer
	l := newLogger("test", &buf)

	SetLogLevel(LevelDebug)
	l.Debugf("visible %d", 1)
	out := buf.String()
	assert.True(t, strings.Contains(out, "visible 1"))
	assert.True(t, strings.Contains(out, "Debug"))
	assert.True(t, strings.Contains(out, "test"))
	assert.True(t, strings.Contains(out, "logging_test.go:"), "prefix must carry the call site")

	buf.Reset()
	SetLogLevel(LevelWarn)
	l.Infof("hidden")
	assert.Equal(t, 0, buf.Len())
	l.Warnf("warned")
	assert.True(t, strings.Contains(buf.String(), "warned"))
}

func TestNoPrintSilencesErrors(t *testing.T) {
	old := level
	defer SetLogLevel(old)

	var buf bytes.Buffer
	l := newLogger("", &buf)
	SetLogLevel(LevelNoPrint)
	l.Errorf("dropped")
	assert.Equal(t, 0, buf.Len())
}

func TestSetDebugMode(t *testing.T) {
	SetDebugMode(false)
	assert.False(t, DebugMode())
	SetDebugMode(true)
	assert.True(t, DebugMode())
	SetDebugMode(false)
}
