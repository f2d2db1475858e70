package orchestrator

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer inserts the delay between consecutive contacts.
type Pacer interface {
	Wait(ctx context.Context) error
}

// intervalPacer enforces a fixed minimum interval between contacts.
type intervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a Pacer that spaces contacts at least interval
// apart. A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return noPacer{}
	}
	return &intervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noPacer struct{}

func (noPacer) Wait(context.Context) error { return nil }
