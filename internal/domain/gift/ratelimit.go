package gift

import (
	"context"
	"time"
)

// RateLimitRecord is an account's recent suggestion-request history as
// epoch-millisecond timestamps, oldest first.  Expired entries are filtered
// on read, never compacted in place.
type RateLimitRecord struct {
	Timestamps []int64 `json:"timestamps" bson:"timestamps"`
}

// Prune returns the timestamps that fall inside the trailing window ending
// at now.
func (r RateLimitRecord) Prune(now time.Time, window time.Duration) []int64 {
	cutoff := now.Add(-window).UnixMilli()
	kept := make([]int64, 0, len(r.Timestamps))
	for _, ts := range r.Timestamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	return kept
}

// RateLimitStore reads and replaces per-account request histories.
type RateLimitStore interface {
	// GetRateLimit returns nil with no error when the account has no
	// recorded history.
	GetRateLimit(ctx context.Context, accountID string) (*RateLimitRecord, error)
	SetRateLimit(ctx context.Context, accountID string, record RateLimitRecord) error
}
