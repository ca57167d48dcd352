package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/api"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/config"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := cfg.BuildService(ctx)
	if err != nil {
		return fmt.Errorf("failed to build service: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Failed to release resources", "error", err)
		}
	}()

	routerConfig := api.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins(),
		Feed: api.FeedConfig{
			SiteURL:     cfg.Server.SiteURL,
			Title:       cfg.Server.SiteTitle,
			Description: cfg.Server.SiteDescription,
		},
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Logger:         logger,
	}
	if cfg.Storage.Type == config.StorageFS {
		routerConfig.UploadsDir = cfg.Storage.FSBaseDir
		routerConfig.UploadsPrefix = cfg.Storage.FSURLPrefix
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(svc, routerConfig),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Antigravity CMS starting",
			"port", cfg.Server.Port,
			"env", cfg.Server.Environment,
			"database", cfg.Database.Type,
			"storage", cfg.Storage.Type,
			"cache", cfg.Cache.Type)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}
