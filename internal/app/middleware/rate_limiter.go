package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// Limit types
const (
	LimitByIP       = "ip"
	LimitByPath     = "path"
	LimitByCombined = "combined"
	LimitByCustom   = "custom"
)

// RateLimiterConfig configures a limiter middleware
type RateLimiterConfig struct {
	Rate       float64                   // requests per second
	Burst      int                       // burst size
	ExpiryTime time.Duration             // idle limiters are dropped after this
	LimitType  string                    // ip, path, combined or custom
	KeyFunc    func(*gin.Context) string // used by the custom type
}

// DefaultRateLimiterConfig is used when no config is given
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	ExpiryTime: time.Hour,
	LimitType:  LimitByIP,
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds one token bucket per key
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	expiry   time.Duration
	lastGC   time.Time
	now      func() time.Time
}

func newLimiterStore(cfg RateLimiterConfig) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(cfg.Rate),
		burst:    cfg.Burst,
		expiry:   cfg.ExpiryTime,
		now:      time.Now,
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// evictLocked drops limiters idle for longer than the expiry, at most once per expiry window
func (s *limiterStore) evictLocked(now time.Time) {
	if s.expiry <= 0 || now.Sub(s.lastGC) < s.expiry {
		return
	}
	s.lastGC = now
	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > s.expiry {
			delete(s.limiters, key)
		}
	}
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func limiterKey(c *gin.Context, cfg RateLimiterConfig) string {
	switch cfg.LimitType {
	case LimitByPath:
		return c.Request.URL.Path
	case LimitByCombined:
		return c.ClientIP() + ":" + c.Request.URL.Path
	case LimitByCustom:
		if cfg.KeyFunc != nil {
			return cfg.KeyFunc(c)
		}
	}
	return c.ClientIP()
}

// RateLimiter creates a rate limiting middleware
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}
	if cfg.ExpiryTime == 0 {
		cfg.ExpiryTime = DefaultRateLimiterConfig.ExpiryTime
	}

	store := newLimiterStore(cfg)
	return func(c *gin.Context) {
		if !store.allow(limiterKey(c, cfg)) {
			response.Abort(c, code.ErrTooManyRequests, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

// IPRateLimiter limits per client IP
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst, LimitType: LimitByIP})
}

// PathRateLimiter limits per request path
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst, LimitType: LimitByPath})
}

// CombinedRateLimiter limits per client IP and path
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst, LimitType: LimitByCombined})
}

// CustomRateLimiter limits per key returned by keyFunc
func CustomRateLimiter(rate float64, burst int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst, LimitType: LimitByCustom, KeyFunc: keyFunc})
}
