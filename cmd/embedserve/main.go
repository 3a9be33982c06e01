// Package main is the embedserve CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperjump/embedserve/internal/config"
	"github.com/hyperjump/embedserve/internal/embedding"
	"github.com/hyperjump/embedserve/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/embedserve/config.yaml"

type rootOptions struct {
	configPath string
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// When the default is requested and no file exists at all, built-in defaults apply,
// which is what a hosting platform that only injects a port expects.
// Returns the config and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg, err := config.Default()
			if err != nil {
				return nil, "", err
			}
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loadService builds the encoder once and wraps it in the embedding service.
func loadService(cfg *config.Config, logger *zap.Logger) (*service.Service, error) {
	start := time.Now()
	enc, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	logger.Info("embedding model loaded",
		zap.String("model", cfg.Embedding.ModelID),
		zap.String("backend", cfg.Embedding.Backend),
		zap.Int("dimensions", enc.Dimensions()),
		zap.Duration("load_time", time.Since(start)),
	)
	return service.New(enc, cfg.Embedding.ModelID, logger), nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "embedserve",
		Short:         "Serve sentence embeddings over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")

	root.AddCommand(newServerCmd(opts))
	root.AddCommand(newEmbedCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "embedserve version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
