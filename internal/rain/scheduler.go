package rain

import (
	"context"
	"time"
)

// Scheduler is the host's frame pacing primitive. Wait blocks until the next
// frame is due or ctx is done.
type Scheduler interface {
	Wait(ctx context.Context) error
}

// TickerScheduler paces frames with a time.Ticker.
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (s *TickerScheduler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ticker.C:
		return nil
	}
}

func (s *TickerScheduler) Stop() { s.ticker.Stop() }
