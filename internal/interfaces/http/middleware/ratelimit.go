package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimitConfig tunes the edge limiter.  This is a coarse per-client
// token bucket protecting the whole API surface; the per-account gift
// window is enforced separately inside the suggestion pipeline.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	// KeyFunc extracts the bucket key; defaults to the client IP.
	KeyFunc func(r *http.Request) string
	// CleanupInterval bounds how long idle buckets are retained.
	CleanupInterval time.Duration
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per key.
type RateLimitMiddleware struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimitMiddleware builds the middleware and starts its janitor.
func NewRateLimitMiddleware(cfg RateLimitConfig) *RateLimitMiddleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientIP
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	m := &RateLimitMiddleware{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
	go m.janitor()
	return m
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// allow takes one token from the key's bucket, refilling by elapsed time.
func (m *RateLimitMiddleware) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(m.cfg.BurstSize)}
		m.buckets[key] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * m.cfg.RequestsPerSecond
		if b.tokens > float64(m.cfg.BurstSize) {
			b.tokens = float64(m.cfg.BurstSize)
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (m *RateLimitMiddleware) janitor() {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := m.now().Add(-m.cfg.CleanupInterval)
		m.mu.Lock()
		for key, b := range m.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(m.buckets, key)
			}
		}
		m.mu.Unlock()
	}
}

// Handler rejects requests whose bucket is empty with 429.
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(m.cfg.KeyFunc(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"resource-exhausted","message":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
