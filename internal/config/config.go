package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Not tagged required: dry runs never touch the API. Callers that do
	// call the model check RequireKey first.
	OpenaiKey string `env:"OPENAI_API_KEY"`

	Model         string `env:"MODEL_NAME" envDefault:"gpt-4.1"`
	LlmRetries    int    `env:"LLM_RETRIES" envDefault:"3"`
	LlmMaxTokens  int    `env:"LLM_MAX_OUTPUT_TOKENS" envDefault:"16000"`
	MaxFetchBytes int    `env:"LLM_MAX_FETCH_BYTES" envDefault:"65536"`

	BriefsDir string `env:"BRIEFS_DIR" envDefault:"data/briefs"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"data/output"`
	PromptDir string `env:"PROMPT_DIR"` // empty means embedded prompts only

	Debug bool   `env:"DEBUG" envDefault:"false"`
	Addr  string `env:"ADDR" envDefault:":8080"`
}

// LoadConfig reads config/.env when present, then parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load("config/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireKey fails when no API key is configured.
func (c *Config) RequireKey() error {
	if c.OpenaiKey == "" {
		return errors.New("OPENAI_API_KEY not found in environment or config/.env")
	}
	return nil
}
