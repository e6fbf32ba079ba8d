package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klai4444/Receptionist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the completion proxy for the mobile clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("no API key configured: set OPENAI_API_KEY or api_key in config.yaml")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		completer := server.NewCompleter(cfg.APIKey, cfg.Model)
		return server.New(cfg.Server, completer).Run(ctx)
	},
}
