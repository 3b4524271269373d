package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"virtualboard/authapi/internal/config"
	authdomain "virtualboard/authapi/internal/domain/auth"
	"virtualboard/authapi/internal/httpserver"
	"virtualboard/authapi/internal/infrastructure/memory"
	"virtualboard/authapi/internal/infrastructure/postgres"
	"virtualboard/authapi/internal/infrastructure/sqlite"
	"virtualboard/authapi/internal/infrastructure/token"
	"virtualboard/authapi/internal/logging"
	authusecase "virtualboard/authapi/internal/usecase/auth"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error(context.Background(), "server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "closing database failed", "err", err)
			return
		}
		logger.Info(context.Background(), "database connection closed")
	}()

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)
	authService := authusecase.NewService(users, tokenManager, authusecase.WithHashCost(cfg.BcryptCost))
	server := httpserver.NewServer(cfg, authService, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "HTTP server listening", "addr", server.Addr(), "db_driver", cfg.DBDriver)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info(context.Background(), "graceful shutdown completed")
		return nil
	})
	return g.Wait()
}

// openStore connects the configured user store and applies its migrations.
func openStore(ctx context.Context, cfg config.Config) (authdomain.UserRepository, io.Closer, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("run database migrations: %w", err)
		}
		return postgres.NewUserRepository(db.Pool), db, nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store.Users(), store, nil
	case config.DriverMemory:
		repo := memory.NewUserRepository()
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
