package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
	"golang.org/x/time/rate"
)

// limiterStore is a per-key token-bucket store.
type limiterStore struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      float64
	burst    int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	if v, ok := s.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := s.limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(s.rps), s.burst))
	return v.(*rate.Limiter)
}

// clientKey keys limits on the accepted admin token when present, otherwise on client IP.
func clientKey(c *gin.Context) string {
	if v, ok := c.Get(TokenKey); ok {
		if tok, ok := v.(string); ok && tok != "" {
			return "admin:" + tok
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket limit per client key.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := &limiterStore{rps: rps, burst: burst}
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
