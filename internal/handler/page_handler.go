package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"boildown/internal/config"
	"boildown/internal/history"
	"boildown/internal/logger"
	"boildown/internal/model"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.Local().Format("1/2/2006, 3:04:05 PM") },
}).ParseFS(templateFS, "templates/index.html"))

// PageHandler serves the server-rendered page and its form posts.
type PageHandler struct {
	sessions Sessions
}

type pageData struct {
	Title string
	View  history.ViewState
}

func NewPageHandler(sessions Sessions) *PageHandler {
	return &PageHandler{sessions: sessions}
}

func (h *PageHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Index)
	g.POST("/input", h.SaveInput)
	g.POST("/summarize", h.Summarize)
	g.POST("/clear", h.Clear)
	g.POST("/entries/:id/toggle", h.Toggle)
}

func (h *PageHandler) Index(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return c.String(http.StatusBadRequest, "missing client id")
	}
	return h.render(c, ctl.View())
}

func (h *PageHandler) SaveInput(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return c.String(http.StatusBadRequest, "missing client id")
	}
	view := h.applyForm(c, ctl)
	return h.finish(c, view)
}

func (h *PageHandler) Summarize(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return c.String(http.StatusBadRequest, "missing client id")
	}
	h.applyForm(c, ctl)
	return h.finish(c, ctl.Submit(c.Request().Context()))
}

func (h *PageHandler) Clear(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return c.String(http.StatusBadRequest, "missing client id")
	}
	// The clear button lives in the summarize form, so the draft comes along.
	h.applyForm(c, ctl)
	return h.finish(c, ctl.Clear(c.Request().Context()))
}

func (h *PageHandler) Toggle(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return c.String(http.StatusBadRequest, "missing client id")
	}
	view, err := ctl.ToggleExpand(c.Param("id"))
	if err != nil {
		logger.Debug("toggle ignored", "module", "handler", "action", "update", "resource", "entry", "result", "failed", "entry_id", c.Param("id"), "error", err)
	}
	return h.finish(c, view)
}

// applyForm copies the posted text and mode into the controller. An unknown
// mode is ignored and the previous one kept.
func (h *PageHandler) applyForm(c echo.Context, ctl *history.Controller) history.ViewState {
	if mode, err := model.ParseSummaryType(c.FormValue("mode")); err == nil {
		ctl.SetMode(mode)
	}
	return ctl.SetText(c.FormValue("text"))
}

// finish redirects back to the page, or renders it in place when the view
// carries an alert that a redirect would lose.
func (h *PageHandler) finish(c echo.Context, view history.ViewState) error {
	if view.Alert != "" {
		return h.render(c, view)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) render(c echo.Context, view history.ViewState) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Title: config.AppName, View: view}); err != nil {
		logger.Error("page render failed", "module", "handler", "action", "fetch", "resource", "page", "result", "failed", "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *PageHandler) controller(c echo.Context) (*history.Controller, bool) {
	id := clientID(c)
	if id == "" {
		return nil, false
	}
	return h.sessions.Get(c.Request().Context(), id), true
}
