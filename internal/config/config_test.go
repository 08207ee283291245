package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want gpt-4.1", cfg.Model)
	}
	if cfg.LlmMaxTokens != 16000 {
		t.Errorf("LlmMaxTokens = %d, want 16000", cfg.LlmMaxTokens)
	}
	if cfg.OutputDir != "data/output" {
		t.Errorf("OutputDir = %q, want data/output", cfg.OutputDir)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
}

func TestRequireKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "placeholder") // register restore
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.RequireKey(); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY unset")
	}

	cfg.OpenaiKey = "sk-test"
	if err := cfg.RequireKey(); err != nil {
		t.Fatalf("RequireKey with key: %v", err)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4.1-mini")
	t.Setenv("LLM_RETRIES", "5")
	t.Setenv("PROMPT_DIR", "custom/prompts")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.LlmRetries != 5 {
		t.Errorf("LlmRetries = %d", cfg.LlmRetries)
	}
	if cfg.PromptDir != "custom/prompts" {
		t.Errorf("PromptDir = %q", cfg.PromptDir)
	}
}
