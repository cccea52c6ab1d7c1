package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	called = false
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("test message") })
	assert.False(t, called, "no-op logger should not reach the previous callback")
}

func TestLogfDefault(t *testing.T) {
	assert.NotNil(t, Logf)
}

func TestVerbosef(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()
	defer SetVerbosity(Verbosity())

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	SetVerbosity(Quiet)
	Verbosef(Info, "hidden")
	assert.Empty(t, lines)

	SetVerbosity(Info)
	Verbosef(Info, "shown %d", 1)
	Verbosef(Verbose, "hidden")
	assert.Equal(t, []string{"shown 1"}, lines)

	SetVerbosity(Verbose)
	Verbosef(Verbose, "detail")
	assert.Equal(t, []string{"shown 1", "detail"}, lines)

	SetVerbosity(-3)
	assert.Equal(t, Quiet, Verbosity())
}
