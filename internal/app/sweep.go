package app

import (
	"context"
	"time"

	"github.com/ilovedelay/i-love-delay/internal/config"
)

// StartOverdueSweep runs the overdue sweep once at startup and then on
// a fixed interval until the returned stop function is called. The
// page-load and pre-read sweeps still happen in the HTTP layer; this
// ticker covers long-idle deployments.
func StartOverdueSweep() (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	interval := config.Global().Sweep.Interval

	go func() {
		runSweep(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runSweep(ctx)
			}
		}
	}()

	globalLogger.Info().
		Dur("interval", interval).
		Msg("started overdue sweep ticker")
	return cancel
}

func runSweep(ctx context.Context) {
	promoted, err := globalSweepService.Run(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("overdue sweep failed")
		return
	}
	globalLogger.Debug().
		Int("promoted", promoted).
		Msg("overdue sweep finished")
}
