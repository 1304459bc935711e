package monitoring

import (
	"log"
	"time"

	"github.com/banshee-data/footprint/internal/timeutil"
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

// clock times the phases reported by Timed.
var clock timeutil.Clock = timeutil.RealClock{}

// SetClock replaces the clock used by Timed. Passing nil restores the real
// clock.
func SetClock(c timeutil.Clock) {
	if c == nil {
		c = timeutil.RealClock{}
	}
	clock = c
}

// Timed starts a stopwatch for a named phase and returns the function that
// stops it and logs the elapsed time through Logf:
//
//	defer monitoring.Timed("reduce features")()
func Timed(phase string) func() time.Duration {
	start := clock.Now()
	return func() time.Duration {
		elapsed := clock.Since(start)
		Logf("%s took %v", phase, elapsed)
		return elapsed
	}
}
