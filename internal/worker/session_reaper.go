package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/config"
)

// Reaper removes idle sessions.
type Reaper interface {
	Reap(idle time.Duration) []string
}

// StartSessionReaper periodically destroys sessions idle for longer than cfg.IdleTTL. It stops
// when ctx is cancelled. The returned channel is closed once the loop has exited.
func StartSessionReaper(ctx context.Context, cfg config.SessionsConfig, reaper Reaper, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if reaper == nil || cfg.IdleTTL <= 0 {
		logger.Info("session reaper disabled")
		close(done)
		return done
	}
	interval := cfg.ReapInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ids := reaper.Reap(cfg.IdleTTL); len(ids) > 0 {
					logger.Debug("idle sessions reaped", zap.Strings("session_ids", ids))
				}
			}
		}
	}()
	return done
}
