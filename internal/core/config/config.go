package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL points at a local fill service. Override via config.toml,
// DOCFILL_SERVER, or the --server flag (flag wins).
const DefaultServerURL = "http://localhost:8000"

const DefaultWelcomeTemplate = `Hi! I just took a look at "{{file_name}}" and it's ready to be filled. We have {{total_placeholders}} {{field_word}} to work through.

Tell me anything you know about your document and I'll take care of the rest. You can also ask me what's still missing at any point.`

type Config struct {
	ServerURL       string
	WelcomeTemplate string
}

type tomlConfig struct {
	ServerURL string `toml:"server_url"`
}

// Load reads config from ~/.config/docfill/
func Load() (*Config, error) {
	cfg := &Config{
		ServerURL:       DefaultServerURL,
		WelcomeTemplate: DefaultWelcomeTemplate,
	}

	if env := os.Getenv("DOCFILL_SERVER"); env != "" {
		cfg.ServerURL = env
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "docfill")
	tomlPath := filepath.Join(configDir, "config.toml")
	welcomePath := filepath.Join(configDir, "welcome_prompt.txt")

	// Load TOML config if it exists; env var still wins over the file.
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.ServerURL != "" && os.Getenv("DOCFILL_SERVER") == "" {
				cfg.ServerURL = strings.TrimSpace(tc.ServerURL)
			}
		}
	}

	// If a custom welcome template exists, use it
	if data, err := os.ReadFile(welcomePath); err == nil {
		cfg.WelcomeTemplate = string(data)
	}

	return cfg, nil
}

// LogPath is where the file logger writes. The TUI owns the terminal, so
// nothing is ever logged to stdout.
func LogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docfill.log"
	}
	return filepath.Join(home, ".config", "docfill", "docfill.log")
}
