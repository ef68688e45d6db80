package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/config"
	v1 "github.com/wardflow/wardflow/internal/handler/v1"
	"github.com/wardflow/wardflow/internal/repository"
	"github.com/wardflow/wardflow/internal/service"
	"github.com/wardflow/wardflow/pkg/database"
	"github.com/wardflow/wardflow/pkg/logger"
	"github.com/wardflow/wardflow/pkg/metrics"
	"github.com/wardflow/wardflow/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	repos := buildRepositories(cfg, log)

	collector := metrics.NewCollector(cfg.App.Name)

	services := service.NewServices(service.Deps{
		Repos:   repos,
		Metrics: collector,
		Logger:  log,
	})

	router := v1.NewRouter(cfg, services, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	services.Audit.Shutdown()

	log.Info("stopped")
}

// buildRepositories connects to postgres when configured; on connection
// failure it falls back to the in-memory store so the API stays available
// without persistence.
func buildRepositories(cfg *config.Config, log *zap.Logger) *repository.Repositories {
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		db, err := database.Connect(cfg.Database)
		if err == nil {
			if err := database.Migrate(db, log); err != nil {
				log.Fatal("migrations failed", zap.Error(err))
			}
			log.Info("connected to postgres", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))
			return repository.NewGormRepositories(db)
		}
		log.Warn("postgres unavailable, using in-memory storage", zap.Error(err))
		cfg.Storage.Driver = config.StorageDriverMemory
	}

	log.Info("using in-memory storage")
	return repository.NewMemoryRepositories()
}
