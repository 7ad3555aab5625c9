package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
)

const defaultHeartbeatInterval = 5 * time.Minute

type Pinger interface {
	Ping(ctx context.Context) error
}

// StartHeartbeat pings db every interval until ctx is cancelled. Failures are
// logged and counted; the next tick tries again. The returned channel closes
// when the loop exits.
func StartHeartbeat(ctx context.Context, db Pinger, interval time.Duration, logger *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	done := make(chan struct{})
	l := logger.With(slog.String("component", "db_heartbeat"))

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				l.Debug("Heartbeat stopped")
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, interval/2)
				err := db.Ping(pingCtx)
				cancel()
				if err != nil {
					metrics.Get().HeartbeatFailuresTotal.Add(ctx, 1)
					l.WarnContext(ctx, "Database heartbeat failed", slog.Any("error", err))
					continue
				}
				l.DebugContext(ctx, "Database heartbeat ok")
			}
		}
	}()

	return done
}
