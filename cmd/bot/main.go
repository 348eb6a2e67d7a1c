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

	"golang.org/x/sync/errgroup"

	h "github.com/veranemoloko/clipbot/internal/api/http"
	"github.com/veranemoloko/clipbot/internal/bot"
	cfgpkg "github.com/veranemoloko/clipbot/internal/config"
	"github.com/veranemoloko/clipbot/internal/downloader"
	"github.com/veranemoloko/clipbot/internal/storage"
)

func main() {

	cfg, err := cfgpkg.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	cfgpkg.SetupLogger(cfg)
	slog.Info("configuration loaded successfully")

	workspace, err := storage.NewWorkspace(cfg.DownloadDir)
	if err != nil {
		slog.Error("failed to initialize workspace", "error", err)
		os.Exit(1)
	}
	if err := workspace.Prune(); err != nil {
		slog.Warn("failed to prune leftover downloads", "error", err)
	}

	dl := downloader.New(cfg, slog.Default())

	tgBot, err := bot.New(cfg, dl, workspace, slog.Default())
	if err != nil {
		slog.Error("failed to initialize bot", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      h.NewRouter(),
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("ops server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := tgBot.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("bot: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	slog.Info("stopped gracefully")
}
