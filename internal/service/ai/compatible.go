package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs
// such as OpenRouter or Ollama.
type CompatibleProvider struct {
	client openai.Client
	model  string
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, httpClient *http.Client, maxRetries int) (*CompatibleProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(maxRetries),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &CompatibleProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

func (p *CompatibleProvider) Test(ctx context.Context) (string, error) {
	params := chatParams(p.model, "", "Hello world")
	params.MaxTokens = openai.Int(50)
	return completeChat(ctx, p.client, params, disableReasoning())
}

func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return completeChat(ctx, p.client, chatParams(p.model, systemPrompt, prompt), disableReasoning())
}

// disableReasoning keeps routers like OpenRouter from spending tokens on
// hidden reasoning for a one-line answer.
func disableReasoning() option.RequestOption {
	return option.WithJSONSet("reasoning", map[string]any{"enabled": false})
}
