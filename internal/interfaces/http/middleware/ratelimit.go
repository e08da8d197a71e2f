package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/WellNodal/pkg/errors"
)

// RateLimitOptions tunes the per-client token-bucket limiter.
type RateLimitOptions struct {
	// RequestsPerSecond is the sustained refill rate per client.
	RequestsPerSecond float64
	// Burst is the bucket capacity, the number of requests a client may
	// spend at once after being idle.
	Burst int
	// KeyFunc extracts the throttling key from the request.  Defaults to the
	// client IP.
	KeyFunc func(c *gin.Context) string
	// CleanupInterval controls how often idle buckets are dropped.  Zero
	// disables the background sweep.
	CleanupInterval time.Duration
}

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is an in-memory token-bucket limiter keyed by client.
type RateLimiter struct {
	rate    float64
	burst   int
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
	stop    chan struct{}
}

// NewRateLimiter creates a limiter and, when sweep > 0, starts a background
// goroutine that evicts buckets idle for longer than the sweep interval.
func NewRateLimiter(rate float64, burst int, sweep time.Duration) *RateLimiter {
	l := &RateLimiter{
		rate:    rate,
		burst:   burst,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	if sweep > 0 {
		go l.sweepLoop(sweep)
	}
	return l
}

// Allow spends one token for key.  It returns whether the request may
// proceed and how many tokens remain.
func (l *RateLimiter) Allow(key string) (bool, int) {
	now := time.Now()

	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if !ok {
		l.mu.Lock()
		bucket, ok = l.buckets[key]
		if !ok {
			bucket = &tokenBucket{tokens: float64(l.burst), lastRefill: now}
			l.buckets[key] = bucket
		}
		l.mu.Unlock()
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.tokens += now.Sub(bucket.lastRefill).Seconds() * l.rate
	if bucket.tokens > float64(l.burst) {
		bucket.tokens = float64(l.burst)
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false, 0
	}
	bucket.tokens--
	return true, int(bucket.tokens)
}

// Stop terminates the background sweep goroutine.
func (l *RateLimiter) Stop() {
	close(l.stop)
}

func (l *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep(interval)
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets that have refilled completely and sat idle for a full
// interval; they are indistinguishable from fresh ones.
func (l *RateLimiter) sweep(interval time.Duration) {
	threshold := time.Now().Add(-interval)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, bucket := range l.buckets {
		bucket.mu.Lock()
		idle := bucket.lastRefill.Before(threshold) && bucket.tokens >= float64(l.burst)-1
		bucket.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

func clientKey(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimit throttles requests per client using a token bucket.  Rejected
// requests get a 429 with Retry-After and the usual X-RateLimit headers.
func RateLimit(opts RateLimitOptions) gin.HandlerFunc {
	keyFunc := opts.KeyFunc
	if keyFunc == nil {
		keyFunc = clientKey
	}
	limiter := NewRateLimiter(opts.RequestsPerSecond, opts.Burst, opts.CleanupInterval)

	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(keyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(1 / opts.RequestsPerSecond)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    errors.ErrCodeTooManyRequests.String(),
				"message": errors.ErrorCodeMessage[errors.ErrCodeTooManyRequests],
			})
			return
		}
		c.Next()
	}
}
