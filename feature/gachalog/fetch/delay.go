package fetch

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delay is the wait applied between two requests: Base plus a uniform
// random amount in [0, Jitter).
type Delay struct {
	Base   time.Duration
	Jitter time.Duration
}

// Next draws the next wait duration.
func (d Delay) Next() time.Duration {
	wait := d.Base
	if d.Jitter > 0 {
		wait += rand.N(d.Jitter)
	}
	return wait
}

// Wait blocks for the next wait duration or until ctx is done.
func (d Delay) Wait(ctx context.Context) error {
	wait := d.Next()
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
