package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window counter per key. Each key's window starts at
// its first request.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	rate    int
	period  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows rate requests per key in every period.
func NewRateLimiter(rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		rate:    rate,
		period:  period,
		now:     time.Now,
	}
}

// Allow counts one request for key. When the key is over its limit it returns
// false and the time until its window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.sweepLocked(now)
		l.windows[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count >= l.rate {
		return false, w.start.Add(l.period).Sub(now)
	}
	w.count++
	return true, 0
}

// Must be called with lock held
func (l *RateLimiter) sweepLocked(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}

// RateLimit limits requests per client IP and company. A non-positive rate
// disables limiting.
func RateLimit(rate int, period time.Duration) gin.HandlerFunc {
	if rate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(rate, period)

	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + GetCompany(c)
		ok, retry := limiter.Allow(key)
		if !ok {
			slog.Warn("rate limit exceeded",
				"client_ip", c.ClientIP(),
				"company", GetCompany(c),
				"request_id", GetRequestID(c),
			)
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
