// Package perf records how long frames take to render. It is off unless
// PLOUTO_PERF=1 and writes through the application logger.
package perf

import (
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	enabled atomic.Bool
	sink    atomic.Pointer[zap.Logger]
)

func init() {
	enabled.Store(os.Getenv("PLOUTO_PERF") == "1")
}

// SetLogger directs timings to logger.
func SetLogger(logger *zap.Logger) {
	sink.Store(logger.Named("perf"))
}

// SetEnabled overrides the environment switch.
func SetEnabled(on bool) {
	enabled.Store(on)
}

func IsEnabled() bool {
	return enabled.Load()
}

// Timer tracks elapsed time for a named operation.
type Timer struct {
	name   string
	start  time.Time
	fields []zap.Field
}

func Start(name string, fields ...zap.Field) *Timer {
	return &Timer{name: name, start: time.Now(), fields: fields}
}

// Stop logs the elapsed time when enabled and returns it either way.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if l := sink.Load(); l != nil && enabled.Load() {
		l.Debug(t.name, append(t.fields, zap.Duration("elapsed", elapsed))...)
	}
	return elapsed
}

// Track times fn.
func Track(name string, fn func()) time.Duration {
	t := Start(name)
	fn()
	return t.Stop()
}
