package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mapgrid/gmapsmcp/pkg/config"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config <path>",
	Short: "Generate or update a Claude Desktop Client config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := generateClientConfig(args[0]); err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}
		slog.Info("successfully generated Claude Desktop Client config", "path", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateConfigCmd)
}

// generateClientConfig creates or updates a Claude Desktop Client config
// file, merging a google-maps server entry into any existing mcpServers map.
func generateClientConfig(outputPath string) error {
	logger := slog.Default()

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0] // Fallback to args if cannot get executable path
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath // Use as is if cannot resolve absolute path
	}

	// The generated entry references the credential by env var; a concrete
	// key never lands in the file unless the user puts it there.
	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		apiKey = "YOUR_API_KEY"
	}
	serverEntry := map[string]interface{}{
		"command": absExecPath,
		"args":    []string{},
		"env": map[string]string{
			config.EnvAPIKey: apiKey,
		},
	}

	var cfg map[string]interface{}
	if _, err := os.Stat(outputPath); err == nil {
		data, err := os.ReadFile(outputPath)
		if err != nil {
			return fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			cfg = make(map[string]interface{})
		}
	} else {
		cfg = make(map[string]interface{})
	}

	mcpServers, ok := cfg["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		cfg["mcpServers"] = mcpServers
	}
	mcpServers["google-maps"] = serverEntry

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
