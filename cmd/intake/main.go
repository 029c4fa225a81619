// Command intake runs only the public submission endpoint, for deployments
// that keep the admin surface off the public network.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/handlers"
	"github.com/signupdesk/signupdesk/backend/internal/bootstrap"
	"github.com/signupdesk/signupdesk/backend/internal/config"
	"github.com/signupdesk/signupdesk/backend/internal/submission/service"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"github.com/signupdesk/signupdesk/backend/pkg/middleware"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	port := os.Getenv("INTAKE_PORT")
	if port == "" {
		port = "3001"
	}

	ctx := context.Background()
	rdb := bootstrap.OpenRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open record store: %v", err)
	}
	defer store.Close(ctx)
	svc := service.New(store.Repo)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	var limit []gin.HandlerFunc
	if h := bootstrap.PublicLimit(cfg.RateLimit, rdb); h != nil {
		limit = append(limit, h)
	}
	handlers.RegisterSubmit(r, svc, limit...)

	checks := map[string]handlers.Check{"store": svc.Ping}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlers.RegisterOps(r, time.Now(), checks)

	srv := &http.Server{Addr: ":" + port, Handler: r, ReadTimeout: cfg.Server.ReadTimeout, WriteTimeout: cfg.Server.WriteTimeout}
	if err := bootstrap.Serve(ctx, srv); err != nil {
		logger.Fatalf("intake failed: %v", err)
	}
}
