package provider

import (
	"context"

	"github.com/openai/openai-go/v2"
)

const (
	DefaultModel           = "gpt-4.1"
	DefaultMaxOutputTokens = 16000

	ResponseFormatBlueprint            = "blueprint"
	ResponseFormatBlueprintDescription = "Content blueprint interpreted from a client brief"
)

// Provider defines the minimal interface for LLM completion.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Validate() error
}

// OpenAIProvider implements Provider using the official openai-go client.
type OpenAIProvider struct {
	apiKey    string
	model     string
	maxTokens int64

	Client openai.Client
}

type OpenAIProviderOption func(*OpenAIProvider)

func WithAPIKey(apiKey string) OpenAIProviderOption {
	return func(p *OpenAIProvider) {
		p.apiKey = apiKey
	}
}

func WithModel(model string) OpenAIProviderOption {
	return func(p *OpenAIProvider) {
		p.model = model
	}
}

func WithMaxOutputTokens(n int64) OpenAIProviderOption {
	return func(p *OpenAIProvider) {
		p.maxTokens = n
	}
}

// CompletionRequest carries the prompts for one completion. Name, Description
// and Schema are optional; when Schema is set the provider requests a JSON
// Schema response format.
type CompletionRequest struct {
	Name         string
	Description  string
	Schema       string
	SystemPrompt string
	UserPrompt   string
}
