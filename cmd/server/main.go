package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/cardregisters/internal/config"
	"github.com/JonMunkholm/cardregisters/internal/core"
	"github.com/JonMunkholm/cardregisters/internal/logging"
	"github.com/JonMunkholm/cardregisters/internal/web"
	"github.com/JonMunkholm/cardregisters/internal/xlsx"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	// Audit trail: PostgreSQL when configured, otherwise in memory.
	var sink core.AuditSink
	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := core.NewPgAuditLog(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare audit table", "error", err)
			os.Exit(1)
		}
		sink = pg
	} else {
		slog.Info("no DATABASE_URL set, audit log kept in memory")
	}

	sessions := core.NewSessionStore(core.WorkspaceOptions{NotifyDuration: cfg.Notify.Duration})
	limiter := core.NewTransferLimiter(cfg.Transfer.MaxConcurrent, cfg.Transfer.MaxWaitTime)
	service := core.NewService(sessions, xlsx.New(), limiter, core.NewAuditor(sink), core.ServiceConfig{
		MaxImportSize:     cfg.Transfer.MaxFileSize,
		MaxAttachmentSize: cfg.Attachment.MaxFileSize,
	})

	slog.Info("registers defined", "count", len(core.Registers()))

	server := web.NewServer(service, cfg)

	// Background jobs stop with jobCtx.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go sessions.StartSweeper(jobCtx, core.SweepConfig{
		TTL:      cfg.Session.TTL,
		Interval: cfg.Session.SweepInterval,
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for transfers to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("transfers did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}

// connect opens and verifies the audit database pool.
func connect(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to audit database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}
