// Package ratelimit keeps per-client token buckets for protecting API endpoints.
package ratelimit

import (
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// Limiter is a token bucket for one client identity that remembers when it was
// last used so idle buckets can be evicted.
type Limiter struct {
	bucket   *rate.Limiter
	lastSeen atomic.Int64
}

// NewLimiter creates a limiter that starts with a full bucket.
func NewLimiter(r Rate) *Limiter {
	burst := r.Burst
	if burst < 1 {
		burst = 1
	}
	l := &Limiter{bucket: rate.NewLimiter(rate.Limit(r.RequestsPerSecond), burst)}
	l.touch(time.Now())
	return l
}

// Allow reports whether a request may proceed now and consumes a token if so.
func (l *Limiter) Allow() bool {
	now := time.Now()
	l.touch(now)
	return l.bucket.AllowN(now, 1)
}

// RetryAfter estimates how long a rejected client should wait for the next token.
func (l *Limiter) RetryAfter() time.Duration {
	tokens := l.bucket.Tokens()
	if tokens >= 1 {
		return 0
	}
	limit := float64(l.bucket.Limit())
	if limit <= 0 {
		return time.Second
	}
	seconds := (1 - tokens) / limit
	return time.Duration(math.Ceil(seconds*1000)) * time.Millisecond
}

// LastSeen returns the time of the most recent Allow call.
func (l *Limiter) LastSeen() time.Time {
	return time.Unix(0, l.lastSeen.Load())
}

func (l *Limiter) touch(now time.Time) {
	l.lastSeen.Store(now.UnixNano())
}
