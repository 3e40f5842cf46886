package ai_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"boildown/internal/service/ai"
)

func TestNewProvider_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := ai.NewProvider(ctx, ai.Config{Provider: ai.ProviderOpenAI, Model: "gpt-3.5-turbo"})
	require.ErrorIs(t, err, ai.ErrMissingAPIKey)

	_, err = ai.NewProvider(ctx, ai.Config{Provider: ai.ProviderOpenAI, APIKey: "key"})
	require.ErrorIs(t, err, ai.ErrMissingModel)

	_, err = ai.NewProvider(ctx, ai.Config{Provider: ai.ProviderCompatible, APIKey: "key", Model: "llama3"})
	require.ErrorIs(t, err, ai.ErrMissingBaseURL)

	_, err = ai.NewProvider(ctx, ai.Config{Provider: "cohere", APIKey: "key", Model: "m"})
	require.ErrorIs(t, err, ai.ErrInvalidProvider)
}

func TestNewProvider_Names(t *testing.T) {
	ctx := context.Background()
	cases := map[string]ai.Config{
		ai.ProviderOpenAI:     {Provider: ai.ProviderOpenAI, APIKey: "k", Model: "gpt-3.5-turbo"},
		ai.ProviderAnthropic:  {Provider: ai.ProviderAnthropic, APIKey: "k", Model: "claude-3-5-haiku-latest"},
		ai.ProviderCompatible: {Provider: ai.ProviderCompatible, APIKey: "k", Model: "llama3", BaseURL: "http://localhost:11434/v1"},
		ai.ProviderGemini:     {Provider: ai.ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := ai.NewProvider(ctx, cfg)
			require.NoError(t, err)
			require.Equal(t, name, p.Name())
		})
	}
}

func TestValidProvider(t *testing.T) {
	require.True(t, ai.ValidProvider("openai"))
	require.True(t, ai.ValidProvider("gemini"))
	require.False(t, ai.ValidProvider(""))
	require.False(t, ai.ValidProvider("OpenAI"))
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var body, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":" Agility \n"}}]}`)
	}))
	defer srv.Close()

	p, err := ai.NewOpenAIProvider("key", srv.URL+"/v1/", "gpt-3.5-turbo", srv.Client(), 0)
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "be brief", "summarize this")
	require.NoError(t, err)
	require.Equal(t, " Agility \n", out)
	require.True(t, strings.HasSuffix(path, "/chat/completions"), path)
	require.Contains(t, body, `"be brief"`)
	require.Contains(t, body, `"summarize this"`)
	require.Contains(t, body, `"gpt-3.5-turbo"`)
}

func TestOpenAIProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)
	}))
	defer srv.Close()

	p, err := ai.NewOpenAIProvider("key", srv.URL+"/v1/", "gpt-3.5-turbo", srv.Client(), 0)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "", "text")
	require.Error(t, err)
	require.True(t, ai.IsRateLimited(err))
}

func TestOpenAIProvider_ServerErrorIsNotRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad model","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p, err := ai.NewOpenAIProvider("key", srv.URL+"/v1/", "nope", srv.Client(), 0)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "", "text")
	require.Error(t, err)
	require.False(t, ai.IsRateLimited(err))
}

func TestAnthropicProvider_Complete(t *testing.T) {
	var body, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"Agility"}],"stop_reason":"end_turn",
			"usage":{"input_tokens":3,"output_tokens":1}}`)
	}))
	defer srv.Close()

	p, err := ai.NewAnthropicProvider("key", srv.URL+"/", "claude-3-5-haiku-latest", srv.Client(), 0)
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "be brief", "summarize this")
	require.NoError(t, err)
	require.Equal(t, "Agility", out)
	require.True(t, strings.HasSuffix(path, "/v1/messages"), path)
	require.Contains(t, body, `"system"`)
	require.Contains(t, body, `"be brief"`)
}

func TestAnthropicProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	p, err := ai.NewAnthropicProvider("key", srv.URL+"/", "claude-3-5-haiku-latest", srv.Client(), 0)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "", "text")
	require.Error(t, err)
	require.True(t, ai.IsRateLimited(err))
}

func TestIsRateLimited_Gemini(t *testing.T) {
	require.True(t, ai.IsRateLimited(genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}))
	require.True(t, ai.IsRateLimited(fmt.Errorf("generate: %w", genai.APIError{Code: 429})))
	require.False(t, ai.IsRateLimited(genai.APIError{Code: http.StatusInternalServerError}))
}

func TestIsRateLimited_PlainErrors(t *testing.T) {
	require.False(t, ai.IsRateLimited(nil))
	require.False(t, ai.IsRateLimited(errors.New("429 too many requests")))
	require.False(t, ai.IsRateLimited(context.DeadlineExceeded))
}
