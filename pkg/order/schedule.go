package order

import "time"

// Scheduler defers a callback. The returned func cancels it if it has not
// run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler runs callbacks on their own goroutine via time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SchedulerFunc adapts a function, letting callers wrap callbacks (for
// example to take a lock and trigger a redraw).
type SchedulerFunc func(d time.Duration, fn func()) func()

func (f SchedulerFunc) After(d time.Duration, fn func()) func() {
	return f(d, fn)
}
