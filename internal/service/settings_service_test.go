package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"boildown/internal/config"
	"boildown/internal/model"
	"boildown/internal/repository"
	"boildown/internal/repository/mock"
	"boildown/internal/repository/testutil"
	"boildown/internal/service"
	"boildown/internal/service/ai"
)

var envDefaults = config.AIConfig{
	Provider:   ai.ProviderOpenAI,
	APIKey:     "sk-env-default-key",
	Model:      "gpt-3.5-turbo",
	MaxRetries: 3,
}

func TestSettingsService_DefaultsFromEnvironment(t *testing.T) {
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), envDefaults)
	ctx := context.Background()

	cfg, err := svc.ResolveAIConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, ai.ProviderOpenAI, cfg.Provider)
	require.Equal(t, "sk-env-default-key", cfg.APIKey)
	require.Equal(t, "gpt-3.5-turbo", cfg.Model)
	require.Equal(t, 3, cfg.MaxRetries)
	require.NotNil(t, cfg.HTTPClient)

	settings, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-***key", settings.APIKey)
}

func TestSettingsService_StoredValuesOverrideDefaults(t *testing.T) {
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), envDefaults)
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider: ai.ProviderAnthropic,
		APIKey:   "sk-ant-stored-secret",
		Model:    "claude-3-5-haiku-latest",
	})
	require.NoError(t, err)

	cfg, err := svc.ResolveAIConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, ai.ProviderAnthropic, cfg.Provider)
	require.Equal(t, "sk-ant-stored-secret", cfg.APIKey)
	require.Equal(t, "claude-3-5-haiku-latest", cfg.Model)
}

func TestSettingsService_MaskedKeyKeepsStored(t *testing.T) {
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), envDefaults)
	ctx := context.Background()

	require.NoError(t, svc.SetAISettings(ctx, &service.AISettings{Provider: ai.ProviderOpenAI, APIKey: "sk-first-secret-key", Model: "gpt-4o-mini"}))

	shown, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.SetAISettings(ctx, shown))

	cfg, err := svc.ResolveAIConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-first-secret-key", cfg.APIKey)
}

func TestSettingsService_RejectsInvalid(t *testing.T) {
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), envDefaults)
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{Provider: "cohere"})
	require.ErrorIs(t, err, service.ErrInvalid)

	err = svc.SetAISettings(ctx, &service.AISettings{Provider: ai.ProviderCompatible, Model: "llama3"})
	require.ErrorIs(t, err, service.ErrInvalid)

	err = svc.SetAISettings(ctx, nil)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestSettingsService_SetPropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	repo.EXPECT().Set(gomock.Any(), "ai.provider", ai.ProviderOpenAI).Return(errors.New("disk full"))

	svc := service.NewSettingsService(repo, envDefaults)
	err := svc.SetAISettings(context.Background(), &service.AISettings{Provider: ai.ProviderOpenAI})
	require.Error(t, err)
	require.Contains(t, err.Error(), "set provider")
}

func TestSettingsService_ResolvePropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	repo.EXPECT().GetByPrefix(gomock.Any(), "ai.").Return(nil, errors.New("db closed"))
	repo.EXPECT().Get(gomock.Any(), "ai.proxy").Return(nil, nil).AnyTimes()

	svc := service.NewSettingsService(repo, envDefaults)
	_, err := svc.ResolveAIConfig(context.Background())
	require.Error(t, err)
}

func TestSettingsService_ProxyPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), "ai.proxy").Return(nil, nil),
		repo.EXPECT().Get(gomock.Any(), "ai.proxy").Return(&model.Setting{Key: "ai.proxy", Value: "socks5://127.0.0.1:1080"}, nil),
	)

	defaults := envDefaults
	defaults.Proxy = "http://env-proxy:3128"
	svc := service.NewSettingsService(repo, defaults)

	require.Equal(t, "http://env-proxy:3128", svc.GetProxyURL(context.Background()))
	require.Equal(t, "socks5://127.0.0.1:1080", svc.GetProxyURL(context.Background()))
}

func TestSettingsService_TestAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Hello!"}}]}`)
	}))
	defer srv.Close()

	defaults := envDefaults
	defaults.BaseURL = srv.URL + "/v1/"
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), defaults)
	reply, err := svc.TestAI(context.Background(), &service.AISettings{
		Provider: ai.ProviderOpenAI,
		APIKey:   "sk-***key",
		BaseURL:  srv.URL + "/v1/",
		Model:    "gpt-3.5-turbo",
	})
	require.NoError(t, err)
	require.Equal(t, "Hello!", reply)
}

func TestSettingsService_TestAI_StoredKeyStaysOnStoredEndpoint(t *testing.T) {
	var mu sync.Mutex
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auths = append(auths, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Hello!"}}]}`)
	}))
	defer srv.Close()

	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), envDefaults)
	for _, key := range []string{"", "sk-***key"} {
		_, err := svc.TestAI(context.Background(), &service.AISettings{
			Provider: ai.ProviderOpenAI,
			APIKey:   key,
			BaseURL:  srv.URL + "/v1/",
			Model:    "gpt-3.5-turbo",
		})
		require.ErrorIs(t, err, service.ErrInvalid)
	}
	_, err := svc.TestAI(context.Background(), &service.AISettings{
		Provider: ai.ProviderAnthropic,
		APIKey:   "sk-***key",
		Model:    "claude-3-haiku-20240307",
	})
	require.ErrorIs(t, err, service.ErrInvalid)
	mu.Lock()
	require.Empty(t, auths)
	mu.Unlock()

	// An explicit key may go anywhere.
	reply, err := svc.TestAI(context.Background(), &service.AISettings{
		Provider: ai.ProviderOpenAI,
		APIKey:   "sk-caller-supplied",
		BaseURL:  srv.URL + "/v1/",
		Model:    "gpt-3.5-turbo",
	})
	require.NoError(t, err)
	require.Equal(t, "Hello!", reply)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"Bearer sk-caller-supplied"}, auths)
}

func TestSettingsService_TestAI_InvalidConfig(t *testing.T) {
	svc := service.NewSettingsService(repository.NewSettingsRepository(testutil.NewTestDB(t)), config.AIConfig{})
	_, err := svc.TestAI(context.Background(), &service.AISettings{Provider: ai.ProviderOpenAI, Model: "gpt-3.5-turbo"})
	require.ErrorIs(t, err, service.ErrInvalid)
}
