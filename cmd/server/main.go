package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffhub/workforce-system/internal/api"
	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/service"
	"github.com/staffhub/workforce-system/internal/infrastructure/config"
	mongodb "github.com/staffhub/workforce-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffhub/workforce-system/internal/infrastructure/db/redis"
	"github.com/staffhub/workforce-system/internal/infrastructure/queue"
	"github.com/staffhub/workforce-system/internal/infrastructure/snapshot"
	"github.com/staffhub/workforce-system/pkg/logger"
)

// main is the composition root: every collaborator is constructed here and
// handed down explicitly, including the snapshot scheduler, whose Start/Stop
// lifecycle is owned by this function rather than any global state.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "workforce-system",
	})

	ctx := context.Background()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	artifactStore, err := snapshot.NewFSStore(cfg.Snapshot.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot store init failed")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	exportStore := mongodb.NewExportStore(db)
	revocations := redisdb.NewRevocationStore(rdb)

	// --- Audit append path ---
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)
	auditService := service.NewAuditService(dispatcher, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revocations, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	employeeService := service.NewEmployeeService(employeeRepo)
	engine := service.NewSnapshotService(exportStore, artifactStore, domain.RetentionPolicy{
		Interval: cfg.Snapshot.Interval(),
		MaxAge:   cfg.Snapshot.MaxAge(),
		MaxCount: cfg.Snapshot.RetentionCount,
	}, auditService, log)
	catalog := service.NewCatalogService(artifactStore, log)

	engine.Start()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:          db,
		Redis:       rdb,
		JWTSecret:   cfg.Auth.JWTSecret,
		Revocations: revocations,
		Auth:        authService,
		Employees:   employeeService,
		Engine:      engine,
		Catalog:     catalog,
		Audit:       auditService,
		AuditRepo:   auditRepo,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("workforce-system started")

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Stop the scheduler first so no half-written artifact survives the exit;
	// Stop waits for an in-flight run to finish.
	engine.Stop()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	// The server is no longer producing audit records; drain what is queued.
	dispatcher.Close()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}

	log.Info().Msg("workforce-system stopped")
}
