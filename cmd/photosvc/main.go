package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bjw5035/family-photo-service/internal/config"
	"github.com/bjw5035/family-photo-service/internal/db"
	"github.com/bjw5035/family-photo-service/internal/logging"
	"github.com/bjw5035/family-photo-service/internal/storage"
	"github.com/bjw5035/family-photo-service/internal/version"
	"github.com/bjw5035/family-photo-service/internal/web"
	"github.com/bjw5035/family-photo-service/internal/web/monitor"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	logger := logging.Setup(config.DefaultLogLevel)

	configFile, err := config.ResolveConfigPath(*configPath)
	if err != nil {
		logger.Error("failed to resolve config path", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAndValidate(configFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = logging.Setup(cfg.Logging.Level)

	logger.Info("starting family-photo-service",
		"version", version.Version,
		"commit", version.Commit,
		"addr", cfg.Addr(),
		"data_dir", cfg.Storage.DataDir,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	database, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.Storage.DataDir, database)
	if err != nil {
		logger.Error("failed to open data directory", "error", err)
		os.Exit(1)
	}

	audit := monitor.New(database, logger, cfg.Audit.Enabled)

	// Keep the EXIF index and storage gauges fresh in the background.
	go store.RunScanner(ctx, cfg.Storage.ScanInterval, cfg.Storage.ScanConcurrency, logger)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: web.NewRouter(web.Deps{
			Store:  store,
			Audit:  audit,
			APIKey: cfg.Auth.APIKey,
			Logger: logger,
		}),
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}
