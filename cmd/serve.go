package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"yatstats/internal/handlers"
	"yatstats/internal/jobs/background"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the microsite HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := loadDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	var cachePinger handlers.Pinger
	if d.cfg.CacheEnabled() {
		cachePinger = d.cache
	}

	e := newServer(d.cfg, d.log, d.metrics, handlers.Routes{
		Microsite: handlers.NewMicrositeHandlers(d.views, d.cfg.PrimarySiteURL, d.log),
		API:       handlers.NewAPIHandlers(d.views, d.log),
		Assets:    handlers.NewAssetHandlers(d.crests, d.log),
		Health:    handlers.NewHealthHandlers(d.pool, cachePinger, version),
		Metrics:   d.metrics.Handler(),
	})

	scheduler, err := background.NewJobScheduler(func() background.PoolStats {
		return d.pool.Stat()
	}, d.metrics, d.cfg.PoolStatsInterval, d.log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			d.log.Warn("failed to stop scheduler", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		d.log.Info("starting http server", "addr", d.cfg.Addr, "env", d.cfg.Env, "version", version)
		serverErr <- e.Start(d.cfg.Addr)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("http server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		d.log.Info("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		d.log.Error("graceful shutdown failed", "error", err)
		return err
	}
	d.log.Info("http server stopped")
	return nil
}
