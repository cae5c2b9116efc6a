package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DefaultView   string `yaml:"default_view" json:"default_view"`     // year, month, week, or day
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Assistant configuration
	AssistantURL   string `yaml:"assistant_url" json:"assistant_url"`     // Chat-completions endpoint
	AssistantModel string `yaml:"assistant_model" json:"assistant_model"` // Model name sent with requests

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".gridplan", "logs", "gridplan.log")
	}

	return &Config{
		DefaultView:    getEnv("GRIDPLAN_VIEW", "month"),
		ConfirmDelete:  true,
		AssistantURL:   getEnv("GRIDPLAN_ASSISTANT_URL", ""),
		AssistantModel: getEnv("GRIDPLAN_ASSISTANT_MODEL", "gpt-4o-mini"),
		LogLevel:       getEnv("GRIDPLAN_LOG_LEVEL", "INFO"),
		LogFile:        getEnv("GRIDPLAN_LOG_FILE", logPath),
		LogConsole:     getEnv("GRIDPLAN_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gridplan", "config.yaml"), nil
}

// Load loads config from ~/.gridplan/config.yaml
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.gridplan/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
