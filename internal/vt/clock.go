package vt

import (
	"context"
	"time"
)

// sleepOrDone waits for d or ctx cancellation, whichever comes first.
func sleepOrDone(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		d = time.Millisecond
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
