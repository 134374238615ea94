// Package worker runs the in-process sweep schedule for deployments
// without an external cron hitting the scan endpoint. Both paths call
// the same scanner; there is no second scheduling mechanism.
package worker

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/scanner"
)

type sweeper interface {
	Scan(ctx context.Context) (scanner.Result, error)
}

// Sweeper ticks at a fixed interval and runs one sweep per tick.
type Sweeper struct {
	scanner  sweeper
	interval time.Duration
}

// NewSweeper creates a sweeper with the given cadence.
func NewSweeper(s sweeper, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Sweeper{scanner: s, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
// A failed sweep is logged and the next tick tries again.
func (s *Sweeper) Run(ctx context.Context) {
	zlog.Logger.Printf("sweeper started, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("sweeper shutting down")
			return
		case <-ticker.C:
			result, err := s.scanner.Scan(ctx)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("scheduled sweep failed")
				continue
			}

			if result.Processed > 0 {
				zlog.Logger.Printf("scheduled sweep: %d processed, %d successful, %d failed",
					result.Processed, result.Successful, result.Failed)
			}
		}
	}
}
