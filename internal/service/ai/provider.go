package ai

import (
	"context"
	"errors"
	"net/http"
)

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock

// Provider is a text-generation backend.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Test sends a short message and returns the reply.
	Test(ctx context.Context) (string, error)
	// Complete sends prompt under systemPrompt and returns the raw reply text.
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Config holds the configuration for an AI provider.
type Config struct {
	Provider   string // openai, anthropic, compatible, gemini
	APIKey     string
	BaseURL    string // optional for openai/anthropic/gemini, required for compatible
	Model      string
	MaxRetries int
	HTTPClient *http.Client // nil means the SDK default
}

const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
	ProviderGemini     = "gemini"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// ValidProvider reports whether name is a known provider.
func ValidProvider(name string) bool {
	switch name {
	case ProviderOpenAI, ProviderAnthropic, ProviderCompatible, ProviderGemini:
		return true
	}
	return false
}

// NewProvider creates a provider from cfg.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient, cfg.MaxRetries)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient, cfg.MaxRetries)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient, cfg.MaxRetries)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxRetries, cfg.HTTPClient)
	default:
		return nil, ErrInvalidProvider
	}
}
