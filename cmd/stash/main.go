package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stash/internal/bootstrap"
	"github.com/kailas-cloud/stash/internal/config"
	"github.com/kailas-cloud/stash/internal/domain/search/state"
	logpkg "github.com/kailas-cloud/stash/internal/logger"
	"github.com/kailas-cloud/stash/internal/metrics"
	itemrepo "github.com/kailas-cloud/stash/internal/repository/item"
	chiTransport "github.com/kailas-cloud/stash/internal/transport/chi"
	healthuc "github.com/kailas-cloud/stash/internal/usecase/health"
	libraryuc "github.com/kailas-cloud/stash/internal/usecase/library"
	searchuc "github.com/kailas-cloud/stash/internal/usecase/search"
	"github.com/kailas-cloud/stash/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stash API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := bootstrap.OpenStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterSearchMetrics()

	searchSvc := searchuc.New(bootstrap.SearchOptions(cfg.Search,
		searchuc.WithLogger(logger.Named("search")),
		searchuc.WithRecorder(metrics.NewSearchRecorder()),
		searchuc.WithObserver(func(from, to state.State) {
			logger.Debug("Search state changed",
				zap.String("from", string(from)),
				zap.String("to", string(to)),
			)
		}),
	)...)

	itemRepo := itemrepo.New(store, cfg.Storage.KeyPrefix, metrics.ItemStoreOperationsTotal, logger)
	library := libraryuc.New(itemRepo, searchSvc, logger.Named("library"))
	if n, err := library.Reload(ctx); err != nil {
		logger.Error("Initial item load failed", zap.Error(err))
	} else {
		logger.Info("Items loaded", zap.Int("items", n))
	}

	healthSvc := healthuc.New(store, library)
	server := chiTransport.NewServer(library, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	searchSvc.Clear()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
