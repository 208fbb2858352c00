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

	"github.com/crucial707/movies-api/internal/config"
	"github.com/crucial707/movies-api/internal/db"
	"github.com/crucial707/movies-api/internal/logging"
	"github.com/crucial707/movies-api/internal/repo"
	"github.com/crucial707/movies-api/internal/scheduler"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.AuditRetention > 0 {
		pruner, ok := s.Audit.(scheduler.Pruner)
		if !ok {
			return errors.New("audit store does not support pruning")
		}
		stopPruning, err := scheduler.Start(cfg.AuditPruneSchedule, cfg.AuditRetention, pruner, logger)
		if err != nil {
			return fmt.Errorf("schedule audit pruning: %w", err)
		}
		defer stopPruning()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(s, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "store", cfg.Store, "tls", cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores connects the configured backend and returns a cleanup func.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store; data is lost on exit")
		return stores{
			Users:  repo.NewMemoryUserRepo(),
			Movies: repo.NewMemoryMovieRepo(),
			Audit:  repo.NewMemoryAuditRepo(),
		}, func() {}, nil
	}

	client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return stores{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database", "db", cfg.MongoDB)

	if err := db.Migrate(client, cfg.MongoDB); err != nil {
		_ = client.Disconnect(context.Background())
		return stores{}, nil, fmt.Errorf("run migrations: %w", err)
	}

	database := client.Database(cfg.MongoDB)
	s := stores{
		Users:  repo.NewUserRepo(database),
		Movies: repo.NewMovieRepo(database),
		Audit:  repo.NewAuditRepo(database),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("database disconnect failed", "error", err)
		}
	}
	return s, closeFn, nil
}
