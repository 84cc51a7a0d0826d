package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supply/cmd"
	httpin "supply/internal/adapters/in/http"
	"supply/internal/adapters/out/postgres"
	redisadapter "supply/internal/adapters/out/redis"
	"supply/internal/core/ports"

	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error getting database handle: %v", err)
	}
	defer sqlDB.Close()

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	var idempotency ports.IdempotencyStore
	components := func() map[string]string {
		return map[string]string{"idempotency": "disabled"}
	}
	if config.RedisURL != "" {
		redisClient, connectErr := redisadapter.Connect(ctx, config.RedisURL)
		if connectErr != nil {
			log.Fatalf("Error connecting to redis: %v", connectErr)
		}
		defer redisClient.Close()
		store := redisadapter.NewIdempotencyStore(
			redisClient, config.IdempotencyTTL, redisadapter.DefaultBreakerSettings, logger)
		idempotency = store
		components = func() map[string]string {
			return map[string]string{"idempotency": "breaker " + store.State()}
		}
	} else {
		logger.Warn("REDIS_URL is empty, Idempotency-Key deduplication is disabled")
	}

	app := cmd.NewCompositionRoot(config, gormDB, idempotency, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, config, httpin.RouterConfig{
		Logger:         logger,
		RequestTimeout: config.RequestTimeout,
		Health:         sqlDB.PingContext,
		Components:     components,
	})
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	config cmd.Config,
	routerConfig httpin.RouterConfig,
) {
	logger := routerConfig.Logger

	doc, err := httpin.LoadSpec(ctx)
	if err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}

	e, err := httpin.NewRouter(httpin.NewServer(app.HTTPHandlers()), doc, routerConfig)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		logger.Info("HTTP server starting", "port", config.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
