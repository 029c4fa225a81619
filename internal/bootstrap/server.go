package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/signupdesk/signupdesk/backend/internal/config"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"github.com/signupdesk/signupdesk/backend/pkg/middleware"
)

const shutdownTimeout = 10 * time.Second

// PublicLimit returns the limiter for unauthenticated routes, or nil when rate
// limiting is off. The Redis limiter is used when asked for and rdb is live.
func PublicLimit(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	if cfg.UseRedis && rdb != nil {
		logger.Infof("rate limiter: redis rps=%.2f burst=%d", cfg.RPS, cfg.Burst)
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RPS, cfg.Burst, time.Duration(cfg.WindowSeconds)*time.Second)
	}
	if cfg.UseRedis {
		logger.Warnf("RATE_LIMIT_USE_REDIS set but Redis is unavailable, using in-memory limiter")
	}
	logger.Infof("rate limiter: memory rps=%.2f burst=%d", cfg.RPS, cfg.Burst)
	return middleware.RateLimitMiddleware(cfg.RPS, cfg.Burst)
}

// Serve runs srv until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests.
func Serve(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
