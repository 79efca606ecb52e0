package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// LocalRateLimiter is the in-process token bucket used when no Redis is
// configured. Buckets idle for longer than idleTTL are forgotten; the sweep
// runs at most once per sweepEvery.
type LocalRateLimiter struct {
	limit      rate.Limit
	burst      int
	perMin     int
	idleTTL    time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	lastSweep time.Time
}

func NewLocalRateLimiter(perMinute int) *LocalRateLimiter {
	perMinute = max(perMinute, 1)
	return &LocalRateLimiter{
		limit:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      max(perMinute/2, 1),
		perMin:     perMinute,
		idleTTL:    5 * time.Minute,
		sweepEvery: time.Minute,
		now:        time.Now,
		limiters:   make(map[string]*ipLimiter),
		lastSweep:  time.Now(),
	}
}

func (l *LocalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := l.get(c.ClientIP())

		if !limiter.Allow() {
			setRateHeaders(c, l.perMin, 0, time.Now().Add(time.Minute/time.Duration(l.perMin)))
			abortTooMany(c, time.Minute/time.Duration(l.perMin))
			return
		}

		setRateHeaders(c, l.perMin, int64(limiter.Tokens()), time.Now().Add(time.Minute))
		c.Next()
	}
}

func (l *LocalRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.sweepEvery {
		for k, v := range l.limiters {
			if now.After(v.expires) {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	if entry, ok := l.limiters[key]; ok {
		entry.expires = now.Add(l.idleTTL)
		return entry.limiter
	}

	entry := &ipLimiter{
		limiter: rate.NewLimiter(l.limit, l.burst),
		expires: now.Add(l.idleTTL),
	}
	l.limiters[key] = entry
	return entry.limiter
}
