package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limit, burst int, ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitPerIP(limit, burst, 100, ttl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitPerIP_BurstThenReject(t *testing.T) {
	r := newLimitedRouter(1, 3, time.Hour)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"), "request %d within burst", i)
	}
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:1234"))
}

func TestRateLimitPerIP_IsolatesClients(t *testing.T) {
	r := newLimitedRouter(1, 1, time.Hour)

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:5678"))

	// a different IP has its own bucket
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.2:1234"))
}

func TestRateLimitPerIP_Refills(t *testing.T) {
	r := newLimitedRouter(100, 1, time.Hour)

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:1234"))

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"))
}

func TestRateLimitPerIP_IdleEntryResets(t *testing.T) {
	r := newLimitedRouter(1, 1, 10*time.Millisecond)

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:1234"))

	// after the idle ttl the client gets a fresh bucket
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234"))
}

func TestRateLimitPerIP_ConcurrentSameIP(t *testing.T) {
	r := newLimitedRouter(1000, 1000, time.Hour)

	const n = 50
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = hit(r, "10.0.0.1:1234")
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		require.Equal(t, http.StatusOK, code, "request %d", i)
	}
}
