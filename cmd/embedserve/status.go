package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/embedserve/internal/cli"
	"github.com/hyperjump/embedserve/internal/config"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var (
		serverURL string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the model a running server has loaded",
		Long: `Show the model a running server has loaded.

Without --server the address comes from the config (server.host, server.port,
server.base_path and FUNCTIONS_CUSTOMHANDLER_PORT).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("server") {
				cfg, _, err := loadConfig(opts.configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				serverURL = localServerURL(&cfg.Server)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			health, err := cli.NewClient(serverURL, 10*time.Second).Health(ctx)
			if err != nil {
				return fmt.Errorf("status failed: %w", err)
			}
			return cli.WriteHealth(cmd.OutOrStdout(), health, format)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (default from config)")
	cmd.Flags().StringVar(&output, "output", string(cli.OutputText), "output format: text or json")
	return cmd
}

// localServerURL is the URL a client on the same host uses to reach a server
// started with cfg. Wildcard listen hosts are dialled as localhost.
func localServerURL(cfg *config.ServerConfig) string {
	host := cfg.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "localhost"
	}
	host = strings.Trim(host, "[]")
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port)) + strings.TrimRight(cfg.BasePath, "/")
}
