package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/calref/user-api/internal/platform/logger"
)

// SlowQueryLogger warns when a statement exceeds the configured threshold.
// A nil receiver or zero threshold disables the check, so stores can take
// it unconditionally.
type SlowQueryLogger struct {
	threshold time.Duration
}

// NewSlowQueryLogger creates a SlowQueryLogger with the given threshold.
func NewSlowQueryLogger(threshold time.Duration) *SlowQueryLogger {
	return &SlowQueryLogger{threshold: threshold}
}

// Observe starts timing a statement and returns a function to be deferred
// at the call site. The op name identifies the statement in logs; query
// text itself is never logged.
func (l *SlowQueryLogger) Observe(ctx context.Context, op string) func() {
	if l == nil || l.threshold <= 0 {
		return func() {}
	}

	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		if elapsed >= l.threshold {
			logger.FromContext(ctx).Warn("slow query detected",
				slog.String("op", op),
				slog.Duration("duration", elapsed),
				slog.Duration("threshold", l.threshold))
		}
	}
}
