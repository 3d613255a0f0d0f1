package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapgrid/gmapsmcp/pkg/config"
)

func TestGenerateClientConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "gmapsmcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Setenv(config.EnvAPIKey, "")

	tests := []struct {
		name     string
		path     string
		existing string
	}{
		{
			name: "new config file",
			path: filepath.Join(tmpDir, "new", "claude_desktop_config.json"),
		},
		{
			name:     "merge into existing config",
			path:     filepath.Join(tmpDir, "existing.json"),
			existing: `{"mcpServers":{"other":{"command":"/bin/other"}},"theme":"dark"}`,
		},
		{
			name:     "replace invalid existing config",
			path:     filepath.Join(tmpDir, "invalid.json"),
			existing: "{not json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.existing != "" {
				if err := os.WriteFile(tt.path, []byte(tt.existing), 0644); err != nil {
					t.Fatalf("Failed to write existing config: %v", err)
				}
			}

			if err := generateClientConfig(tt.path); err != nil {
				t.Fatalf("generateClientConfig() error = %v", err)
			}

			data, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatalf("Failed to read generated config: %v", err)
			}

			var cfg map[string]interface{}
			if err := json.Unmarshal(data, &cfg); err != nil {
				t.Fatalf("Generated config is not valid JSON: %v", err)
			}

			mcpServers, ok := cfg["mcpServers"].(map[string]interface{})
			if !ok {
				t.Fatal("Generated config missing mcpServers map")
			}

			entry, ok := mcpServers["google-maps"].(map[string]interface{})
			if !ok {
				t.Fatal("Generated config missing google-maps server entry")
			}
			if entry["command"] == "" {
				t.Error("Expected non-empty command path")
			}

			env, ok := entry["env"].(map[string]interface{})
			if !ok {
				t.Fatal("Generated entry missing env map")
			}
			if env[config.EnvAPIKey] != "YOUR_API_KEY" {
				t.Errorf("Expected %s placeholder, got %v", config.EnvAPIKey, env[config.EnvAPIKey])
			}

			// Pre-existing entries must survive the merge.
			if tt.name == "merge into existing config" {
				if _, ok := mcpServers["other"]; !ok {
					t.Error("Existing mcpServers entry was dropped")
				}
				if cfg["theme"] != "dark" {
					t.Error("Existing top-level settings were dropped")
				}
			}
		})
	}
}
