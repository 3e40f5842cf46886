package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"boildown/internal/history"
	"boildown/internal/model"
)

type fixedSummarizer string

func (s fixedSummarizer) Summarize(ctx context.Context, text string, mode model.SummaryType) string {
	return string(s)
}

func newTestSessions() *history.Registry {
	return history.NewRegistry(func(string) history.Storage { return history.NewMemoryStorage() }, fixedSummarizer("Agility"), history.Options{})
}

func newContext(e *echo.Echo, method, target, body, client string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if client != "" {
		c.Set(ClientIDKey, client)
	}
	return c, rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) history.ViewState {
	t.Helper()
	var view history.ViewState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestHistoryHandler_SummarizeFlow(t *testing.T) {
	e := echo.New()
	h := NewHistoryHandler(newTestSessions())

	c, rec := newContext(e, http.MethodPut, "/api/input", `{"text":"The quick brown fox jumps over the lazy dog","mode":"word"}`, "client-a")
	require.NoError(t, h.UpdateInput(c))
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	require.True(t, view.CanSubmit)
	require.Equal(t, model.SummaryTypeWord, view.Mode)

	c, rec = newContext(e, http.MethodPost, "/api/summarize", "", "client-a")
	require.NoError(t, h.Summarize(c))
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeView(t, rec)
	require.Len(t, view.Entries, 1)
	require.Equal(t, "Agility", view.Entries[0].SummaryText)
	require.Equal(t, model.SummaryTypeWord, view.Entries[0].SummaryType)
	require.Equal(t, "The quick brown fox jumps over the lazy dog", view.Entries[0].OriginalText)
	require.True(t, view.Entries[0].Latest)
	require.Empty(t, view.Text)

	c, rec = newContext(e, http.MethodGet, "/api/history", "", "client-b")
	require.NoError(t, h.GetHistory(c))
	require.Empty(t, decodeView(t, rec).Entries)
}

func TestHistoryHandler_SummarizeWithBody(t *testing.T) {
	e := echo.New()
	h := NewHistoryHandler(newTestSessions())

	c, rec := newContext(e, http.MethodPost, "/api/summarize", `{"text":"some text"}`, "client-a")
	require.NoError(t, h.Summarize(c))
	view := decodeView(t, rec)
	require.Len(t, view.Entries, 1)
	require.Equal(t, model.SummaryTypeSentence, view.Entries[0].SummaryType)
}

func TestHistoryHandler_InvalidMode(t *testing.T) {
	e := echo.New()
	h := NewHistoryHandler(newTestSessions())

	c, rec := newContext(e, http.MethodPut, "/api/input", `{"text":"kept out","mode":"paragraph"}`, "client-a")
	require.NoError(t, h.UpdateInput(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(e, http.MethodGet, "/api/history", "", "client-a")
	require.NoError(t, h.GetHistory(c))
	require.Empty(t, decodeView(t, rec).Text)
}

func TestHistoryHandler_ToggleAndClear(t *testing.T) {
	e := echo.New()
	h := NewHistoryHandler(newTestSessions())

	long := strings.Repeat("word ", 120)
	body, err := json.Marshal(map[string]string{"text": long})
	require.NoError(t, err)
	c, rec := newContext(e, http.MethodPost, "/api/summarize", string(body), "client-a")
	require.NoError(t, h.Summarize(c))
	id := decodeView(t, rec).Entries[0].ID

	c, rec = newContext(e, http.MethodPost, "/api/history/"+id+"/toggle", "", "client-a")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.ToggleEntry(c))
	view := decodeView(t, rec)
	require.True(t, view.Entries[0].Expanded)
	require.Equal(t, history.ShowLessLabel, view.Entries[0].ToggleLabel)

	c, rec = newContext(e, http.MethodPost, "/api/history/nope/toggle", "", "client-a")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	require.NoError(t, h.ToggleEntry(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(e, http.MethodDelete, "/api/history", "", "client-a")
	require.NoError(t, h.ClearHistory(c))
	view = decodeView(t, rec)
	require.Empty(t, view.Entries)
	require.False(t, view.ShowClear)
}

func TestHistoryHandler_MissingClient(t *testing.T) {
	e := echo.New()
	h := NewHistoryHandler(newTestSessions())

	c, rec := newContext(e, http.MethodGet, "/api/history", "", "")
	require.NoError(t, h.GetHistory(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
