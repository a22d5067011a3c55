package gift

import (
	"context"
	"time"

	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/pkg/errors"
)

// Limiter admits suggestion requests against a per-account trailing
// window: at most max admitted timestamps within the window.
type Limiter struct {
	store  domain.RateLimitStore
	max    int
	window time.Duration
	now    func() time.Time
}

// NewLimiter builds a sliding-window limiter over the given store.
func NewLimiter(store domain.RateLimitStore, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window, now: time.Now}
}

// WithClock overrides the limiter's clock.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow admits one request for the account, recording its timestamp, or
// returns a resource-exhausted error when the window is at capacity.
// Expired entries are dropped from the persisted record as a side effect.
func (l *Limiter) Allow(ctx context.Context, accountID string) error {
	rec, err := l.store.GetRateLimit(ctx, accountID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "read rate limit")
	}
	if rec == nil {
		rec = &domain.RateLimitRecord{}
	}

	now := l.now()
	kept := rec.Prune(now, l.window)
	if len(kept) >= l.max {
		return errors.ResourceExhausted("gift suggestion limit reached, try again later")
	}

	kept = append(kept, now.UnixMilli())
	if err := l.store.SetRateLimit(ctx, accountID, domain.RateLimitRecord{Timestamps: kept}); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "write rate limit")
	}
	return nil
}
