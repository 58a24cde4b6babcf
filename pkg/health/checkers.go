package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when the process exceeds max goroutines, which
// usually indicates a leak.
func GoroutineCountCheck(max int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > max {
			return errors.Errorf("too many goroutines: %d > %d", n, max)
		}
		return nil
	}
}

// MinCountCheck fails while count() stays below min. Useful for gating
// readiness on warmed-up state, e.g. a loaded catalog.
func MinCountCheck(min int, count func() int) CheckFunc {
	return func(context.Context) error {
		if n := count(); n < min {
			return errors.Errorf("count %d below minimum %d", n, min)
		}
		return nil
	}
}
