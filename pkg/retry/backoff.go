package retry

import (
	"context"
	"time"
)

// Backoff used for retry sleep backoff
type Backoff interface {
	// Next waits before the next attempt. It returns false once attempts
	// are exhausted or ctx is done.
	Next(ctx context.Context) bool
}

// ConstantBackoff implements Backoff interface with constant sleep time
type ConstantBackoff struct {
	Sleep time.Duration
	// Max is the number of retries after the first attempt.
	Max int

	tried int
}

func (c *ConstantBackoff) Next(ctx context.Context) bool {
	c.tried++
	if c.tried > c.Max {
		return false
	}

	if c.Sleep <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(c.Sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
