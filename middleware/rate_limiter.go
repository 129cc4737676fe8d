package middleware

import (
	"net/http"
	"sync"
	"time"

	"govconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*visitor
	perMin   int
	mu       sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 200
	}
	return &rateLimiterStore{limiters: make(map[string]*visitor), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.limiters[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// sweep forgets visitors idle for longer than idle.
func (s *rateLimiterStore) sweep(idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, v := range s.limiters {
		if time.Since(v.lastSeen) > idle {
			delete(s.limiters, ip)
		}
	}
}

// RateLimitMiddleware limits requests per IP address to perMin per minute.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	go func() {
		for range time.Tick(10 * time.Minute) {
			store.sweep(30 * time.Minute)
		}
	}()

	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "RateLimited", "message": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
