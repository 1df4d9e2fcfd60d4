package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petconnect/marketplace/internal/api"
	"github.com/petconnect/marketplace/internal/api/metrics"
	mongodb "github.com/petconnect/marketplace/internal/infrastructure/db/mongo"
	redisinfra "github.com/petconnect/marketplace/internal/infrastructure/db/redis"
	"github.com/petconnect/marketplace/internal/infrastructure/queue"
	"github.com/petconnect/marketplace/internal/pkg/config"
	"github.com/petconnect/marketplace/pkg/logger"

	_ "github.com/petconnect/marketplace/docs"
)

// @title           PetConnect Marketplace API
// @version         1.0
// @description     Pet care marketplace: owners, sitters, shelters, storefront, back office.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Audit entries are written off the request path.
	dispatcher := queue.NewDispatcher(cfg.Admin.ActivityWorkers, mongodb.NewActivityRepository(db), log)
	dispatcher.Start(ctx)
	go sampleQueueDepth(ctx, dispatcher)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

// sampleQueueDepth exports the audit dispatcher backlog as a gauge.
func sampleQueueDepth(ctx context.Context, d *queue.Dispatcher) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i, depth := range d.QueueDepths() {
				metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(depth))
			}
		}
	}
}

// ensureIndexes creates the unique and TTL indexes the repositories rely on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAdminRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewAdminSessionRepository(db).EnsureIndexes(ctx)
}
