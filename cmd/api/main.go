package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	"github.com/mohammadpnp/contact-import/internal/bootstrap"
	"github.com/mohammadpnp/contact-import/internal/config"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, cfg.Database.URL); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	infra, err := bootstrap.NewInfrastructure(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize infrastructure", "error", err)
	}
	defer infra.Close()

	// Workers outlive the signal context so queued runs can drain on shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	worker := app.NewImportWorker(infra.NewReconciler(infra.Uploads, log), log, app.ImportWorkerConfig{
		Workers:    cfg.Import.Workers,
		QueueSize:  cfg.Import.QueueSize,
		RunTimeout: cfg.Import.RunTimeout,
	})
	worker.Start(workerCtx)

	server := bootstrap.NewHTTPServer(cfg, infra, app.NewSubmitImport(worker), log)

	go func() {
		log.Info("http server started", "port", cfg.Port)
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Runs still queued when the drain timeout expires are dropped and
	// in-flight runs are canceled without a summary.
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Import.DrainTimeout)
	defer cancelDrain()

	if err := worker.Shutdown(drainCtx); err != nil {
		log.Warn("import worker stopped before draining the queue", "error", err)
		return
	}
	log.Info("import worker stopped")
}
