package ratelimit

import (
	"strconv"
	"sync"
	"time"
)

const (
	cleanupPeriod = 5 * time.Minute
	maxIdle       = 10 * time.Minute
)

// PerUserLimiter keeps one token bucket per user ID. Buckets untouched
// for maxIdle are dropped by a background sweep so the map does not grow
// with every user who ever asked a question.
type PerUserLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*Bucket
	burst      float64
	refillRate float64
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewPerUserLimiter creates a per-user limiter and starts its cleanup
// sweep. Call Stop when the limiter is no longer needed.
func NewPerUserLimiter(burst, refillRate float64) *PerUserLimiter {
	l := &PerUserLimiter{
		buckets:    make(map[string]*Bucket),
		burst:      burst,
		refillRate: refillRate,
		stopCh:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

// AllowUser consumes one token from the user's bucket. A zero user ID
// (unauthenticated callers never reach the chat route) is always allowed.
func (l *PerUserLimiter) AllowUser(userID int64) bool {
	if userID == 0 {
		return true
	}
	key := strconv.FormatInt(userID, 10)

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = NewBucket(l.burst, l.refillRate)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

// ActiveUsers returns the number of tracked buckets.
func (l *PerUserLimiter) ActiveUsers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup sweep.
func (l *PerUserLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *PerUserLimiter) sweep() {
	ticker := time.NewTicker(cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, bucket := range l.buckets {
				if bucket.idle(now, maxIdle) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
