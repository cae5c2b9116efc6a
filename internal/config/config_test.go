package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultView != "month" {
		t.Fatalf("DefaultView = %q, want month", cfg.DefaultView)
	}
	if !cfg.ConfirmDelete {
		t.Fatal("ConfirmDelete should default to true")
	}
	if cfg.LogLevel != "INFO" {
		t.Fatalf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("GRIDPLAN_VIEW", "week")
	t.Setenv("GRIDPLAN_LOG_LEVEL", "DEBUG")
	t.Setenv("GRIDPLAN_LOG_CONSOLE", "true")
	t.Setenv("GRIDPLAN_ASSISTANT_URL", "https://llm.example.com/v1/chat/completions")

	cfg := DefaultConfig()
	if cfg.DefaultView != "week" {
		t.Fatalf("DefaultView = %q, want week", cfg.DefaultView)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Fatalf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if !cfg.LogConsole {
		t.Fatal("LogConsole override not applied")
	}
	if cfg.AssistantURL != "https://llm.example.com/v1/chat/completions" {
		t.Fatalf("AssistantURL = %q", cfg.AssistantURL)
	}
}
