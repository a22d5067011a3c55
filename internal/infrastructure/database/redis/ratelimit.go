package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/pkg/errors"
)

// RateLimitStore keeps each account's request history in a sorted set
// scored by epoch milliseconds.  Keys expire one window after the last
// write so idle accounts cost nothing.
type RateLimitStore struct {
	client *Client
	window time.Duration
}

// NewRateLimitStore builds a store whose keys expire after window.
func NewRateLimitStore(client *Client, window time.Duration) *RateLimitStore {
	return &RateLimitStore{client: client, window: window}
}

func (s *RateLimitStore) key(accountID string) string {
	return s.client.Key("ratelimit:" + accountID)
}

// GetRateLimit implements gift.RateLimitStore.
func (s *RateLimitStore) GetRateLimit(ctx context.Context, accountID string) (*gift.RateLimitRecord, error) {
	members, err := s.client.Raw().ZRangeWithScores(ctx, s.key(accountID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "read rate limit")
	}
	if len(members) == 0 {
		return nil, nil
	}
	record := &gift.RateLimitRecord{Timestamps: make([]int64, 0, len(members))}
	for _, m := range members {
		record.Timestamps = append(record.Timestamps, int64(m.Score))
	}
	return record, nil
}

// SetRateLimit implements gift.RateLimitStore by replacing the whole set.
func (s *RateLimitStore) SetRateLimit(ctx context.Context, accountID string, record gift.RateLimitRecord) error {
	key := s.key(accountID)
	pipe := s.client.Raw().TxPipeline()
	pipe.Del(ctx, key)
	if len(record.Timestamps) > 0 {
		members := make([]redis.Z, len(record.Timestamps))
		for i, ts := range record.Timestamps {
			// The index keeps members unique under same-millisecond
			// timestamps; scores carry the actual values.
			members[i] = redis.Z{Score: float64(ts), Member: fmt.Sprintf("%d:%d", i, ts)}
		}
		pipe.ZAdd(ctx, key, members...)
		pipe.PExpire(ctx, key, s.window)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "write rate limit")
	}
	return nil
}

var _ gift.RateLimitStore = (*RateLimitStore)(nil)
