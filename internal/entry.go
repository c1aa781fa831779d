// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/quirelabs/quire/internal/api"
	"github.com/quirelabs/quire/internal/audit"
	"github.com/quirelabs/quire/internal/notes"
	"github.com/quirelabs/quire/internal/settings"
	"github.com/quirelabs/quire/internal/shell"
	"github.com/quirelabs/quire/internal/vault"

	"github.com/quirelabs/quire/internal/mcpserver"
)

// core bundles the initialized domain pieces shared by the serve, shell
// and mcp entry points.
type core struct {
	cfg     *Config
	logger  *slog.Logger
	mgr     *notes.Manager
	svc     *api.Service
	auditDB *audit.DB
	prefs   *settings.Store
}

// buildCore initializes logging, the vault roots, the audit log and the
// note manager, then loads existing notes from disk.
func buildCore(cfg *Config, logOut io.Writer) (*core, error) {
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Vault.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Vault.TrashPath, 0o755); err != nil {
		return nil, fmt.Errorf("create trash dir: %w", err)
	}

	dataFS, err := vault.NewFS(cfg.Vault.DataPath)
	if err != nil {
		return nil, fmt.Errorf("init data vault: %w", err)
	}
	trashFS, err := vault.NewFS(cfg.Vault.TrashPath)
	if err != nil {
		return nil, fmt.Errorf("init trash vault: %w", err)
	}

	auditDB, err := audit.Open(cfg.Audit.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("init audit log: %w", err)
	}

	mgr := notes.New(notes.NewMirror(dataFS, trashFS), logger, auditDB)
	if err := mgr.InitFromFS(); err != nil {
		auditDB.Close()
		return nil, fmt.Errorf("load vault: %w", err)
	}

	return &core{
		cfg:     cfg,
		logger:  logger,
		mgr:     mgr,
		svc:     api.NewService(mgr),
		auditDB: auditDB,
		prefs:   settings.Load(cfg.Settings.Path),
	}, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts...)
	cfg := app.config

	c, err := buildCore(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer c.auditDB.Close()
	logger := c.logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Vault.DataPath),
		slog.String("trash_path", cfg.Vault.TrashPath),
		slog.String("audit_path", cfg.Audit.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	apiRouter := api.NewRouter(c.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data root for external edits.
	g.Go(func() error {
		if err := vault.Watch(gCtx, cfg.Vault.DataPath, logger, c.svc.RefreshNote); err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunShell starts the interactive shell. Logs go to stderr so they do
// not interleave with the prompt.
func RunShell(ctx context.Context, opts ...Option) error {
	app := newApplication(opts...)

	c, err := buildCore(app.config, os.Stderr)
	if err != nil {
		return err
	}
	defer c.auditDB.Close()

	sh := shell.New(c.mgr, c.prefs, c.auditDB, c.logger)
	return sh.Run(ctx)
}

// RunMCP starts the MCP stdio server. Stdout carries the protocol, so
// logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(opts...)

	c, err := buildCore(app.config, os.Stderr)
	if err != nil {
		return err
	}
	defer c.auditDB.Close()

	srv := mcpserver.New(c.svc)
	c.logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
