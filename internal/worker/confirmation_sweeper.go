package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/repository"
)

// RunConfirmationSweeper purges expired confirmation tickets every interval until ctx is
// done. It blocks; run it in its own goroutine.
func RunConfirmationSweeper(ctx context.Context, sweeper repository.Sweeper, interval time.Duration, logger *zap.Logger) {
	if sweeper == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweeper.Sweep(ctx); n > 0 {
				logger.Debug("expired confirmations purged", zap.Int("count", n))
			}
		}
	}
}
