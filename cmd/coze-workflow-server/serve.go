package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kamekamek/coze-workflow-server/internal/config"
	"github.com/kamekamek/coze-workflow-server/internal/coze"
	"github.com/kamekamek/coze-workflow-server/internal/logging"
	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/kamekamek/coze-workflow-server/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

// runServe loads the configuration before touching stdin, so a missing
// token aborts startup without consuming any protocol input.
func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	store, err := notes.New(notes.Seed)
	if err != nil {
		return fmt.Errorf("creating note store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing note store", "err", err)
		}
	}()

	client := coze.New(cfg.Endpoint, cfg.APIToken, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	srv := server.New(store, client, logger)

	logger.Info("Coze Workflow MCP server running on stdio")
	err = srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
