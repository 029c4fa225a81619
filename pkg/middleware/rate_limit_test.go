package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func hit(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	return w.Code
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.POST("/submit", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) })

	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))
	require.Equal(t, http.StatusOK, hit(r, "/submit"))
	require.Equal(t, http.StatusOK, hit(r, "/submit"))
	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, 1))
	r.POST("/submit", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) })

	require.Equal(t, http.StatusOK, hit(r, "/submit"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "/submit"))

	// one token refills after 0.5s
	time.Sleep(600 * time.Millisecond)
	require.Equal(t, http.StatusOK, hit(r, "/submit"))
}

func TestRateLimitMiddleware_SeparateInstancesDoNotShareBuckets(t *testing.T) {
	r := gin.New()
	r.POST("/a", RateLimitMiddleware(0.5, 1), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/b", RateLimitMiddleware(0.5, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, hit(r, "/a"))
	require.Equal(t, http.StatusOK, hit(r, "/b"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "/a"))
}

func TestRateLimitMiddleware_KeysOnAdminToken(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(TokenKey, c.GetHeader("X-Test-Token"))
		c.Next()
	})
	r.Use(RateLimitMiddleware(0.5, 1))
	r.POST("/u", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(tok string) int {
		req := httptest.NewRequest(http.MethodPost, "/u", nil)
		req.Header.Set("X-Test-Token", tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	require.Equal(t, http.StatusOK, send("t1"))
	require.Equal(t, http.StatusTooManyRequests, send("t1"))
	require.Equal(t, http.StatusOK, send("t2"))
}
