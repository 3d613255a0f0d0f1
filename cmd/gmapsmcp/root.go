package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapgrid/gmapsmcp/pkg/config"
	"github.com/mapgrid/gmapsmcp/pkg/server"
	"github.com/mapgrid/gmapsmcp/pkg/version"
)

var (
	flagConfig   string
	flagAPIKey   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gmapsmcp",
	Short: "Google Maps MCP server",
	Long: `Serves Google Maps geocoding, place details and distance matrix
lookups as MCP tools over stdio, for use by AI agent hosts such as
Claude Desktop.

The Google Maps Platform credential is read from the ` + config.EnvAPIKey + `
environment variable (a .env file in the working directory is honored),
from the api_key entry of ` + config.DefaultPath + `, or from --api-key.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Google Maps Platform API key (overrides env and config file)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func loadConfig() (config.Config, error) {
	return config.Load(config.Options{
		Path: flagConfig,
		Overrides: &config.Overrides{
			APIKey:   &flagAPIKey,
			LogLevel: &flagLogLevel,
		},
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays clean for JSON-RPC framing.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting Google Maps MCP server",
		"version", version.BuildVersion,
		"log_level", cfg.LogLevel)

	srv, err := server.New(cfg)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		return err
	}

	logger.Info("server initialized, waiting for requests")
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}
