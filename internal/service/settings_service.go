package service

import (
	"context"
	"fmt"
	"strings"

	"boildown/internal/config"
	"boildown/internal/logger"
	"boildown/internal/network"
	"boildown/internal/repository"
	"boildown/internal/service/ai"
)

// AISettings is the AI configuration as shown to and edited by the user.
type AISettings struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
	Proxy    string `json:"proxy"`
}

// Setting keys
const (
	keyAIProvider = "ai.provider"
	keyAIAPIKey   = "ai.api_key"
	keyAIBaseURL  = "ai.base_url"
	keyAIModel    = "ai.model"
	keyAIProxy    = "ai.proxy"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service.go -package=mock

// SettingsService manages the server-wide AI configuration.
type SettingsService interface {
	// GetAISettings returns the effective configuration with the API key masked.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings stores the configuration. An empty or masked API key keeps the stored key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI runs one round-trip against the provider described by settings.
	// An empty or masked key reuses the stored key only when provider and
	// base URL match the stored ones.
	TestAI(ctx context.Context, settings *AISettings) (string, error)
	// ResolveAIConfig returns the unmasked provider configuration, stored values over defaults.
	ResolveAIConfig(ctx context.Context) (ai.Config, error)
	// GetProxyURL returns the proxy for outbound model calls.
	GetProxyURL(ctx context.Context) string
}

type settingsService struct {
	repo     repository.SettingsRepository
	defaults config.AIConfig
	clients  *network.ClientFactory
}

// NewSettingsService creates a settings service falling back to defaults
// for anything not stored.
func NewSettingsService(repo repository.SettingsRepository, defaults config.AIConfig) SettingsService {
	s := &settingsService{repo: repo, defaults: defaults}
	s.clients = network.NewClientFactory(s)
	return s
}

func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	stored, err := s.stored(ctx)
	if err != nil {
		return nil, err
	}
	settings := s.effective(stored)
	settings.APIKey = maskAPIKey(settings.APIKey)
	return &settings, nil
}

func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings == nil {
		return ErrInvalid
	}
	if settings.Provider != "" && !ai.ValidProvider(settings.Provider) {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, settings.Provider)
	}
	if settings.Provider == ai.ProviderCompatible && strings.TrimSpace(settings.BaseURL) == "" {
		return fmt.Errorf("%w: %v", ErrInvalid, ai.ErrMissingBaseURL)
	}

	if settings.Provider != "" {
		if err := s.repo.Set(ctx, keyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.setAPIKey(ctx, strings.TrimSpace(settings.APIKey)); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIBaseURL, strings.TrimSpace(settings.BaseURL)); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIModel, strings.TrimSpace(settings.Model)); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIProxy, strings.TrimSpace(settings.Proxy)); err != nil {
		return fmt.Errorf("set proxy: %w", err)
	}

	logger.Info("ai settings saved", "module", "service", "action", "save", "resource", "settings", "result", "ok", "provider", settings.Provider, "model", settings.Model)
	return nil
}

func (s *settingsService) TestAI(ctx context.Context, settings *AISettings) (string, error) {
	if settings == nil {
		return "", ErrInvalid
	}

	provider := settings.Provider
	if provider == "" {
		provider = ai.ProviderOpenAI
	}
	baseURL := strings.TrimSpace(settings.BaseURL)

	// The stored key only ever goes to the stored endpoint.
	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" || isMaskedKey(apiKey) {
		stored, err := s.stored(ctx)
		if err != nil {
			return "", fmt.Errorf("get AI settings: %w", err)
		}
		current := s.effective(stored)
		if current.Provider == "" {
			current.Provider = ai.ProviderOpenAI
		}
		if provider != current.Provider || baseURL != strings.TrimSpace(current.BaseURL) {
			return "", fmt.Errorf("%w: %v for a different provider or base URL", ErrInvalid, ai.ErrMissingAPIKey)
		}
		apiKey = current.APIKey
	}

	cfg := ai.Config{
		Provider:   provider,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      settings.Model,
		MaxRetries: 0,
		HTTPClient: network.NewClientFactory(network.StaticProxy(settings.Proxy)).NewHTTPClient(ctx, 0),
	}

	p, err := ai.NewProvider(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	reply, err := p.Test(ctx)
	if err != nil {
		logger.Warn("ai test failed", "module", "service", "action", "test", "resource", "ai", "result", "failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return "", err
	}
	logger.Info("ai test ok", "module", "service", "action", "test", "resource", "ai", "result", "ok", "provider", cfg.Provider, "model", cfg.Model)
	return reply, nil
}

func (s *settingsService) ResolveAIConfig(ctx context.Context) (ai.Config, error) {
	stored, err := s.stored(ctx)
	if err != nil {
		return ai.Config{}, fmt.Errorf("get AI settings: %w", err)
	}
	settings := s.effective(stored)

	return ai.Config{
		Provider:   settings.Provider,
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		MaxRetries: s.defaults.MaxRetries,
		HTTPClient: s.clients.NewHTTPClient(ctx, 0),
	}, nil
}

func (s *settingsService) GetProxyURL(ctx context.Context) string {
	val, err := s.getString(ctx, keyAIProxy)
	if err == nil && val != "" {
		return val
	}
	return s.defaults.Proxy
}

// stored loads every ai.* row in one query.
func (s *settingsService) stored(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.GetByPrefix(ctx, "ai.")
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// effective overlays non-empty stored values on the environment defaults.
func (s *settingsService) effective(stored map[string]string) AISettings {
	pick := func(key, fallback string) string {
		if v := stored[key]; v != "" {
			return v
		}
		return fallback
	}
	return AISettings{
		Provider: pick(keyAIProvider, s.defaults.Provider),
		APIKey:   pick(keyAIAPIKey, s.defaults.APIKey),
		BaseURL:  pick(keyAIBaseURL, s.defaults.BaseURL),
		Model:    pick(keyAIModel, s.defaults.Model),
		Proxy:    pick(keyAIProxy, s.defaults.Proxy),
	}
}

// maskAPIKey keeps a short vendor prefix (e.g. "sk-") and the last three characters.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	return apiKey[:prefixEnd] + "***" + apiKey[len(apiKey)-3:]
}

func isMaskedKey(key string) bool {
	return key != "" && len(key) < 20 && strings.Contains(key, "***")
}

func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

func (s *settingsService) setAPIKey(ctx context.Context, value string) error {
	if value == "" || isMaskedKey(value) {
		return nil
	}
	return s.repo.Set(ctx, keyAIAPIKey, value)
}
