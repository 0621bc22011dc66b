package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uplandimports/storefront/api"
	dbfs "github.com/uplandimports/storefront/db"
	"github.com/uplandimports/storefront/internal/catalog"
	"github.com/uplandimports/storefront/internal/config"
	"github.com/uplandimports/storefront/internal/db"
	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/internal/repository/memory"
	"github.com/uplandimports/storefront/internal/repository/sqlite"
	"github.com/uplandimports/storefront/pkg/notify"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	notify.SetLogger(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("server exited with error", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("starting storefront server",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("storage", cfg.Storage.Driver))

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("close storage", slog.Any("err", err))
		}
	}()

	mailer := notify.NewMailer(notify.Config{
		Host:                    cfg.Mail.Host,
		Port:                    cfg.Mail.Port,
		Username:                cfg.Mail.Username,
		Password:                cfg.Mail.Password,
		From:                    cfg.Mail.From,
		To:                      cfg.Mail.To,
		Timeout:                 cfg.Mail.Timeout,
		CircuitFailureThreshold: cfg.Mail.CircuitFailureThreshold,
		CircuitReset:            cfg.Mail.CircuitReset,
	})

	handler, err := api.SetupRoutes(cfg, version, buildTime, store, mailer, metrics.New())
	if err != nil {
		return fmt.Errorf("setup routes: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout + cfg.Mail.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// openStore returns the configured storage backend and a function that
// releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (api.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		conn, err := db.New(ctx, cfg.Storage.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if cfg.Storage.MigrateOnStart {
			if err := db.Migrate(ctx, conn, dbfs.Migrations, dbfs.SeedFiles); err != nil {
				_ = conn.Close()
				return nil, nil, fmt.Errorf("migrate database: %w", err)
			}
			logger.Info("database migrated", slog.String("path", cfg.Storage.DatabasePath))
		}
		return sqlite.New(conn, logger), conn.Close, nil
	default:
		products, err := catalog.Default()
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		logger.Info("using in-memory storage", slog.Int("products", len(products)))
		return memory.New(products), func() error { return nil }, nil
	}
}
