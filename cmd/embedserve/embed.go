package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyperjump/embedserve/internal/cli"
	"github.com/hyperjump/embedserve/internal/models"
	"github.com/hyperjump/embedserve/pkg/utils"
	"github.com/spf13/cobra"
)

func newEmbedCmd(opts *rootOptions) *cobra.Command {
	var (
		serverURL string
		output    string
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "embed [flags] <text>",
		Short: "Print the embedding of text",
		Long: `Print the embedding of text as the same JSON envelope POST /embed returns.

Text is all remaining arguments joined by spaces. With --server the request goes to a
running server; otherwise the model is loaded in this process.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			text := cli.JoinArgs(args)
			if text == "" {
				return errors.New("input text is empty")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var resp models.EmbedResponse
			if serverURL != "" {
				resp, err = cli.NewClient(serverURL, timeout).Embed(ctx, text)
				if err != nil {
					return fmt.Errorf("embed failed: %w", err)
				}
			} else {
				resp, err = embedLocally(ctx, opts.configPath, text)
				if err != nil {
					return err
				}
			}
			return cli.WriteEmbedding(cmd.OutOrStdout(), resp, format)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = load the model in this process)")
	cmd.Flags().StringVar(&output, "output", string(cli.OutputJSON), "output format: json or text")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "request timeout when using --server")
	return cmd
}

func embedLocally(ctx context.Context, configPath, text string) (models.EmbedResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return models.EmbedResponse{}, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug, cfg.Tracing.ServiceName)
	if err != nil {
		return models.EmbedResponse{}, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	svc, err := loadService(cfg, logger)
	if err != nil {
		return models.EmbedResponse{}, fmt.Errorf("failed to load embedding model: %w", err)
	}
	defer svc.Close()

	vec, err := svc.Embed(ctx, text)
	if err != nil {
		return models.EmbedResponse{}, fmt.Errorf("error generating embedding: %w", err)
	}
	return models.NewEmbedResponse(vec), nil
}
