package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-crm/internal/db"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/ratelimit"
	"github.com/BruksfildServices01/clinic-crm/internal/logging"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	"github.com/BruksfildServices01/clinic-crm/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	if err := dbpkg.SeedAdmin(ctx, db, cfg, logger); err != nil {
		logger.WithError(err).Fatal("failed to seed admin")
	}

	var loginCounter ratelimit.Counter = ratelimit.NewMemoryCounter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		loginCounter = ratelimit.NewRedisCounter(client, "clinic:login:")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// ClientIP keys the login throttle; only listed proxies may set X-Forwarded-For.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.WithError(err).Fatal("invalid TRUSTED_PROXIES")
	}
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	routes.RegisterRoutes(r, db, cfg, auditDispatcher, loginCounter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		logger.WithError(err).Warn("audit queue not drained")
	}
}
