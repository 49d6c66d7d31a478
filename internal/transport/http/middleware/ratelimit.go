package middleware

import (
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter *rate.Limiter
	last    atomic.Int64
}

// RateLimitPerIP limits requests per client IP with an LRU of token
// buckets. The LRU bounds memory; an entry idle longer than ttl is
// replaced with a fresh bucket on its next request, so no sweeper
// goroutine is needed.
func RateLimitPerIP(limit, burst, cacheSize int, ttl time.Duration) gin.HandlerFunc {
	visitors, _ := lru.New[string, *visitor](cacheSize)

	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}
		now := time.Now()

		v, ok := visitors.Get(host)
		if ok && now.UnixNano()-v.last.Load() > int64(ttl) {
			ok = false
		}
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(limit), burst)}
			visitors.Add(host, v)
		}
		v.last.Store(now.UnixNano())

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": true, "message": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
