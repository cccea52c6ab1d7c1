package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Verbosity levels used by the capture loop.
const (
	Quiet   = 0
	Info    = 1
	Verbose = 2
)

var verbosity atomic.Int32

// SetVerbosity sets the level that Verbosef compares against. Negative
// levels are treated as Quiet.
func SetVerbosity(level int) {
	if level < 0 {
		level = Quiet
	}
	verbosity.Store(int32(level))
}

// Verbosity returns the current level.
func Verbosity() int {
	return int(verbosity.Load())
}

// Verbosef logs through Logf when the current verbosity is at least level.
func Verbosef(level int, format string, v ...interface{}) {
	if level > Verbosity() {
		return
	}
	Logf(format, v...)
}
