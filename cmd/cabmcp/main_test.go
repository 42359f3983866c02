package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateClientConfig(t *testing.T) {
	tmpDir := t.TempDir()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(oldDir)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		mergeOnly bool
		wantErr   bool
	}{
		{
			name:    "valid path",
			path:    "config.json",
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "non-json extension",
			path:    "config.txt",
			wantErr: true,
		},
		{
			name:    "path with ..",
			path:    filepath.Join("..", "config.json"),
			wantErr: true,
		},
		{
			name:      "merge with existing",
			path:      "merge.json",
			mergeOnly: true,
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mergeOnly {
				existing := map[string]interface{}{
					"existing_key": "existing_value",
					"mcpServers": map[string]interface{}{
						"other": map[string]interface{}{"command": "/usr/bin/other"},
					},
				}
				data, err := json.Marshal(existing)
				if err != nil {
					t.Fatalf("Failed to marshal existing config: %v", err)
				}
				if err := os.WriteFile(tt.path, data, 0600); err != nil {
					t.Fatalf("Failed to write existing config: %v", err)
				}
			}

			err := generateClientConfig(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("generateClientConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatalf("Failed to stat config file: %v", err)
			}
			if mode := info.Mode(); mode != 0600 {
				t.Errorf("Config file has wrong permissions: %v, want 0600", mode)
			}

			data, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatalf("Failed to read config file: %v", err)
			}

			var cfg map[string]interface{}
			if err := json.Unmarshal(data, &cfg); err != nil {
				t.Fatalf("Failed to parse config JSON: %v", err)
			}

			servers, ok := cfg["mcpServers"].(map[string]interface{})
			if !ok {
				t.Fatal("Config missing 'mcpServers' section")
			}
			entry, ok := servers["cabs"].(map[string]interface{})
			if !ok {
				t.Fatal("Config missing 'cabs' server entry")
			}
			if cmd, _ := entry["command"].(string); cmd == "" {
				t.Error("Server entry has empty command")
			}
			if _, ok := entry["env"]; !ok {
				t.Error("Server entry missing env block")
			}

			if tt.mergeOnly {
				if val, ok := cfg["existing_key"]; !ok || val != "existing_value" {
					t.Error("Merge failed to preserve existing content")
				}
				if _, ok := servers["other"]; !ok {
					t.Error("Merge failed to preserve existing server entry")
				}
			}
		})
	}
}
