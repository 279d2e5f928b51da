// Package leaktest fails tests that leave goroutines running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	defaultGrace = 500 * time.Millisecond
	pollInterval = 10 * time.Millisecond
)

type checker struct {
	tolerance int
	grace     time.Duration
}

// Option tunes a Check
type Option func(*checker)

// WithTolerance allows n extra goroutines, e.g. a connection pool's health checker
func WithTolerance(n int) Option {
	return func(c *checker) { c.tolerance = n }
}

// WithGrace sets how long stragglers get to exit before the test fails
func WithGrace(d time.Duration) Option {
	return func(c *checker) { c.grace = d }
}

// Check records the goroutine count and returns a func that fails t if more
// are still running once the grace period is over:
//
//	defer leaktest.Check(t)()
func Check(t testing.TB, opts ...Option) func() {
	t.Helper()

	c := checker{grace: defaultGrace}
	for _, opt := range opts {
		opt(&c)
	}
	before := settledCount()

	return func() {
		t.Helper()

		deadline := time.Now().Add(c.grace)
		after := runtime.NumGoroutine()
		for after-before > c.tolerance && time.Now().Before(deadline) {
			time.Sleep(pollInterval)
			after = runtime.NumGoroutine()
		}

		if leaked := after - before; leaked > c.tolerance {
			t.Errorf("leaked %d goroutine(s) (before=%d after=%d tolerance=%d)\n%s",
				leaked, before, after, c.tolerance, stacks())
		}
	}
}

// settledCount lets goroutines from earlier tests finish unwinding first
func settledCount() int {
	runtime.Gosched()
	time.Sleep(pollInterval)
	return runtime.NumGoroutine()
}

func stacks() []byte {
	buf := make([]byte, 64<<10)
	return buf[:runtime.Stack(buf, true)]
}
