package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/embedserve/internal/server"
	"github.com/hyperjump/embedserve/internal/tracing"
	"github.com/hyperjump/embedserve/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServerCmd(opts *rootOptions) *cobra.Command {
	var (
		debug bool
		port  int
	)
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Load the model and serve POST /embed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, resolvedConfigPath, err := loadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			debugMode := cfg.Debug || debug
			logger, err := utils.NewLogger(debugMode, cfg.Tracing.ServiceName)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			logger.Info("config loaded",
				zap.String("config_path", resolvedConfigPath),
				zap.Bool("debug", debugMode),
			)

			shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, logger)
			if err != nil {
				return fmt.Errorf("failed to init tracing: %w", err)
			}
			defer func() {
				tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(tctx); err != nil {
					logger.Warn("tracing shutdown failed", zap.Error(err))
				}
			}()

			svc, err := loadService(cfg, logger)
			if err != nil {
				logger.Fatal("Failed to load embedding model", zap.Error(err))
			}
			defer svc.Close()

			srv := server.NewServer(svc, &cfg.Server, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().IntVar(&port, "port", 0, "override server.port")
	return cmd
}
