package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// CallLimiter bounds the rate of outbound provider calls. *redis.RateLimiter satisfies it
// for a limit shared across instances; NewLocalCallLimiter covers a single process.
type CallLimiter interface {
	WithTransaction(ctx context.Context, fn func() error) error
}

type localCallLimiter struct {
	limiter *rate.Limiter
}

// NewLocalCallLimiter allows callsPerMinute calls per minute, waiting for a token when the
// budget is spent. It returns nil when callsPerMinute is not positive.
func NewLocalCallLimiter(callsPerMinute int) CallLimiter {
	if callsPerMinute <= 0 {
		return nil
	}
	every := time.Minute / time.Duration(callsPerMinute)
	return &localCallLimiter{limiter: rate.NewLimiter(rate.Every(every), callsPerMinute)}
}

func (l *localCallLimiter) WithTransaction(ctx context.Context, fn func() error) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	return fn()
}
