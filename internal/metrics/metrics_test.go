package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boildown/internal/metrics"
)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveSummary("word", metrics.OutcomeOK, "openai", 300*time.Millisecond)
	m.ObserveSummary("sentence", metrics.OutcomeRateLimited, "", 0)
	m.IncPersistFailure()
	m.SetSessions(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	require.Contains(t, text, `boildown_gateway_summaries_total{mode="word",outcome="ok"} 1`)
	require.Contains(t, text, `boildown_gateway_summaries_total{mode="sentence",outcome="rate_limited"} 1`)
	require.Contains(t, text, `boildown_history_persist_failures_total 1`)
	require.Contains(t, text, `boildown_history_sessions 3`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveSummary("word", metrics.OutcomeOK, "openai", time.Second)
	m.IncPersistFailure()
	m.SetSessions(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
