package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// geminiRetryDelay is the first backoff step; each retry doubles it.
var geminiRetryDelay = 500 * time.Millisecond

// GeminiProvider implements Provider for the Gemini API.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	maxRetries int
}

// NewGeminiProvider creates a new Gemini provider. The genai SDK does not
// retry, so 429 and 5xx responses are retried here up to maxRetries times.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL, model string, maxRetries int, httpClient *http.Client) (*GeminiProvider, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &GeminiProvider{client: client, model: model, maxRetries: maxRetries}, nil
}

func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

func (p *GeminiProvider) Test(ctx context.Context) (string, error) {
	return p.generate(ctx, "Hello world", &genai.GenerateContentConfig{MaxOutputTokens: 50})
}

func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, "")
	}
	return p.generate(ctx, prompt, config)
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	delay := geminiRetryDelay
	for attempt := 0; ; attempt++ {
		resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
		if err == nil {
			return resp.Text(), nil
		}
		if attempt >= p.maxRetries || !retryableGeminiError(err) {
			return "", err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func retryableGeminiError(err error) bool {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	default:
		return false
	}
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
