package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/signupdesk/signupdesk/backend/handlers"
	"github.com/signupdesk/signupdesk/backend/internal/admin"
	"github.com/signupdesk/signupdesk/backend/internal/bootstrap"
	"github.com/signupdesk/signupdesk/backend/internal/broadcast"
	"github.com/signupdesk/signupdesk/backend/internal/config"
	"github.com/signupdesk/signupdesk/backend/internal/storage"
	"github.com/signupdesk/signupdesk/backend/internal/submission/service"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
	"github.com/signupdesk/signupdesk/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: store=%s admin=%s sms=%s redis=%v minio=%v",
		cfg.Store.Backend, cfg.Admin.Mode, cfg.SMS.Notifier, cfg.Redis.Addr() != "", cfg.MinIO.Endpoint != "")

	ctx := context.Background()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(cors())
	r.Use(middleware.RequestLogger(), gin.Recovery())

	rdb := bootstrap.OpenRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open record store: %v", err)
	}
	defer store.Close(ctx)
	submissions := service.New(store.Repo)

	var history broadcast.History
	if col := store.Dispatches(); col != nil {
		history = broadcast.NewMongoHistory(col)
	}
	sms := broadcast.NewService(submissions, notifier(cfg.SMS, rdb), history)

	var blacklist admin.Blacklist
	if rdb != nil {
		blacklist = admin.NewRedisBlacklist(rdb, "")
	} else {
		blacklist = admin.NewMemoryBlacklist()
	}
	guard := admin.NewGuard(cfg.Admin, blacklist)
	if guard.Mode() == admin.ModeStatic {
		logger.Warn("admin uses the static token; set ADMIN_TOKEN_MODE=jwt for expiring tokens")
	}

	var exporter handlers.Exporter
	if cfg.MinIO.Endpoint != "" {
		exp, err := storage.NewMinIOExporter(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("snapshot export falls back to direct download: %v", err)
		} else {
			exporter = exp
		}
	}

	handlers.Register(r, handlers.Deps{
		Guard:       guard,
		Submissions: submissions,
		Broadcast:   sms,
		Exporter:    exporter,
		PublicLimit: bootstrap.PublicLimit(cfg.RateLimit, rdb),
	})

	checks := map[string]handlers.Check{"store": submissions.Ping}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlers.RegisterOps(r, startTime, checks)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Server.StaticDir != "" {
		handlers.RegisterStatic(r, cfg.Server.StaticDir)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := bootstrap.Serve(ctx, srv); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// cors allows the bundled pages to be served from another origin in development.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func notifier(cfg config.SMSConfig, rdb *redis.Client) broadcast.Notifier {
	switch cfg.Notifier {
	case "noop":
		return broadcast.NoopNotifier{}
	case "redis":
		if rdb != nil {
			return broadcast.NewRedisQueueNotifier(rdb, cfg.QueueKey)
		}
		logger.Warnf("SMS_NOTIFIER=redis but Redis is unavailable, logging dispatches instead")
	}
	return broadcast.LogNotifier{}
}
