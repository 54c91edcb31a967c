package driver

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

var globalTPSLimiter = NewTPSLimiter()

// TPSLimiter throttles requests sharing a token.
type TPSLimiter interface {
	Limit(ctx context.Context, token string, tps float64, burst int) error
}

// NewTPSLimiter returns a limiter keeping one bucket per token.
func NewTPSLimiter() TPSLimiter {
	return &multipleBucketLimiter{
		buckets: make(map[string]*rate.Limiter),
	}
}

type multipleBucketLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// Limit waits for a slot in the bucket of token. A bucket is rebuilt when
// its rate or burst changed. tps <= 0 disables throttling.
func (m *multipleBucketLimiter) Limit(ctx context.Context, token string, tps float64, burst int) error {
	if tps <= 0 {
		return nil
	}

	m.mu.Lock()
	bucket, ok := m.buckets[token]
	if !ok || float64(bucket.Limit()) != tps || bucket.Burst() != burst {
		bucket = rate.NewLimiter(rate.Limit(tps), burst)
		m.buckets[token] = bucket
	}
	m.mu.Unlock()

	return bucket.Wait(ctx)
}
