package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boildown/internal/logger"
	"boildown/internal/metrics"
	"boildown/internal/model"
	"boildown/internal/service/ai"
)

// Strings returned in place of a summary when the upstream call fails.
const (
	FallbackWord      = "Error"
	FallbackSentence  = "An error occurred while generating the summary. Please try again later."
	RateLimitFallback = "Rate limit reached. Please wait a moment before trying again."
)

var errEmptySummary = errors.New("model returned an empty summary")

// AIConfigResolver supplies the provider configuration for each request.
type AIConfigResolver interface {
	ResolveAIConfig(ctx context.Context) (ai.Config, error)
}

// ProviderFactory builds a provider for one request.
type ProviderFactory func(ctx context.Context, cfg ai.Config) (ai.Provider, error)

// SummarizeService is the boundary to the model provider.
type SummarizeService interface {
	// Summarize never fails: upstream errors are logged and replaced by a
	// fallback string, so the result is always non-empty.
	Summarize(ctx context.Context, text string, mode model.SummaryType) string
}

type summarizeService struct {
	configs     AIConfigResolver
	newProvider ProviderFactory
	metrics     *metrics.Metrics
}

// NewSummarizeService creates the gateway. A nil factory means ai.NewProvider.
func NewSummarizeService(configs AIConfigResolver, newProvider ProviderFactory, m *metrics.Metrics) SummarizeService {
	if newProvider == nil {
		newProvider = ai.NewProvider
	}
	return &summarizeService{
		configs:     configs,
		newProvider: newProvider,
		metrics:     m,
	}
}

func (s *summarizeService) Summarize(ctx context.Context, text string, mode model.SummaryType) string {
	start := time.Now()
	summary, providerName, err := s.complete(ctx, text, mode)
	elapsed := time.Since(start)

	if err == nil {
		s.metrics.ObserveSummary(string(mode), metrics.OutcomeOK, providerName, elapsed)
		logger.Info("summary generated", "module", "service", "action", "summarize", "resource", "ai", "result", "ok", "provider", providerName, "mode", mode, "duration_ms", elapsed.Milliseconds())
		return summary
	}

	if ai.IsRateLimited(err) {
		s.metrics.ObserveSummary(string(mode), metrics.OutcomeRateLimited, providerName, elapsed)
		logger.Warn("summary rate limited", "module", "service", "action", "summarize", "resource", "ai", "result", "failed", "provider", providerName, "mode", mode, "error", err)
		return RateLimitFallback
	}

	s.metrics.ObserveSummary(string(mode), metrics.OutcomeFallback, providerName, elapsed)
	logger.Error("summary failed", "module", "service", "action", "summarize", "resource", "ai", "result", "failed", "provider", providerName, "mode", mode, "error", err)
	return fallbackFor(mode)
}

func (s *summarizeService) complete(ctx context.Context, text string, mode model.SummaryType) (string, string, error) {
	cfg, err := s.configs.ResolveAIConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("resolve ai config: %w", err)
	}

	provider, err := s.newProvider(ctx, cfg)
	if err != nil {
		return "", cfg.Provider, fmt.Errorf("create provider: %w", err)
	}

	out, err := provider.Complete(ctx, ai.SystemPrompt, ai.GetSummarizePrompt(text, mode))
	if err != nil {
		return "", provider.Name(), fmt.Errorf("complete: %w", err)
	}

	summary := strings.TrimSpace(out)
	if summary == "" {
		return "", provider.Name(), errEmptySummary
	}
	return summary, provider.Name(), nil
}

func fallbackFor(mode model.SummaryType) string {
	if mode == model.SummaryTypeWord {
		return FallbackWord
	}
	return FallbackSentence
}
