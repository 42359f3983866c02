package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/server"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/version"
)

var (
	showVersion    bool
	debug          bool
	generateConfig string
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate an MCP client config file at the specified path")
}

func main() {
	flag.Parse()

	// Configure logging
	var logLevel slog.Level
	if debug {
		logLevel = slog.LevelDebug
	} else {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Show version and exit if requested
	if showVersion {
		fmt.Println(version.String())
		return
	}

	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	// Generate an MCP client config if requested
	if generateConfig != "" {
		if err := generateClientConfig(generateConfig); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated MCP client config", "path", generateConfig)
		return
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting cab booking MCP server",
		"version", version.BuildVersion,
		"log_level", logLevel.String())

	// Create and run the MCP server
	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	logger.Info("server initialized, waiting for requests")
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// generateClientConfig creates or updates an MCP client config file,
// registering this binary under the "cabs" server entry. An existing
// file is merged rather than replaced so other servers in it survive.
func generateClientConfig(outputPath string) error {
	logger := slog.Default()

	if outputPath == "" {
		return fmt.Errorf("output path is empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("output path must end in .json: %s", outputPath)
	}
	if strings.Contains(outputPath, "..") {
		return fmt.Errorf("output path must not contain '..': %s", outputPath)
	}

	// Get absolute path to executable
	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	cabsConfig := map[string]interface{}{
		"command": absExecPath,
		"args":    []string{},
		"env": map[string]interface{}{
			config.EnvPlacesAPIKey: os.Getenv(config.EnvPlacesAPIKey),
		},
	}

	var cfg map[string]interface{}

	// Merge with an existing file when present
	if data, err := os.ReadFile(outputPath); err == nil {
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
	mcpServers["cabs"] = cabsConfig

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// The file can carry an API key, so keep it private to the owner.
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
