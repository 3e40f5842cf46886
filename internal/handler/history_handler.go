package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"boildown/internal/history"
	"boildown/internal/model"
)

// Sessions hands out the controller of a client.
type Sessions interface {
	Get(ctx context.Context, clientID string) *history.Controller
}

type HistoryHandler struct {
	sessions Sessions
}

type inputRequest struct {
	Text *string `json:"text"`
	Mode string  `json:"mode"`
}

func NewHistoryHandler(sessions Sessions) *HistoryHandler {
	return &HistoryHandler{sessions: sessions}
}

func (h *HistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/history", h.GetHistory)
	g.DELETE("/history", h.ClearHistory)
	g.POST("/history/:id/toggle", h.ToggleEntry)
	g.PUT("/input", h.UpdateInput)
	g.POST("/summarize", h.Summarize)
}

// GetHistory returns the caller's view state.
// @Summary Get history
// @Description Get the input, mode, submit state and history entries of the calling client. A pending alert is returned once.
// @Tags history
// @Produce json
// @Success 200 {object} history.ViewState
// @Router /history [get]
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "missing client id")
	}
	return c.JSON(http.StatusOK, ctl.View())
}

// UpdateInput stores the draft input and mode.
// @Summary Update input
// @Description Replace the draft text and/or the summary mode. Omitted fields are kept.
// @Tags history
// @Accept json
// @Produce json
// @Param input body inputRequest true "Draft input"
// @Success 200 {object} history.ViewState
// @Failure 400 {object} errorResponse
// @Router /input [put]
func (h *HistoryHandler) UpdateInput(c echo.Context) error {
	var req inputRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ctl, ok := h.controller(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "missing client id")
	}
	view, err := applyInput(ctl, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Summarize summarizes the draft input and prepends the result to the history.
// @Summary Summarize input
// @Description Optionally replace the draft, then summarize it. Blank input or a request already in flight makes this a no-op.
// @Tags history
// @Accept json
// @Produce json
// @Param input body inputRequest false "Draft input"
// @Success 200 {object} history.ViewState
// @Failure 400 {object} errorResponse
// @Router /summarize [post]
func (h *HistoryHandler) Summarize(c echo.Context) error {
	var req inputRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ctl, ok := h.controller(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "missing client id")
	}
	if _, err := applyInput(ctl, req); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ctl.Submit(c.Request().Context()))
}

// ClearHistory erases the caller's history.
// @Summary Clear history
// @Description Erase every entry and the persisted record. No-op when the history is empty.
// @Tags history
// @Produce json
// @Success 200 {object} history.ViewState
// @Router /history [delete]
func (h *HistoryHandler) ClearHistory(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "missing client id")
	}
	return c.JSON(http.StatusOK, ctl.Clear(c.Request().Context()))
}

// ToggleEntry flips the expanded flag of one entry.
// @Summary Toggle entry
// @Description Expand or collapse the original text of one history entry
// @Tags history
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} history.ViewState
// @Failure 404 {object} errorResponse
// @Router /history/{id}/toggle [post]
func (h *HistoryHandler) ToggleEntry(c echo.Context) error {
	ctl, ok := h.controller(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "missing client id")
	}
	view, err := ctl.ToggleExpand(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *HistoryHandler) controller(c echo.Context) (*history.Controller, bool) {
	id := clientID(c)
	if id == "" {
		return nil, false
	}
	return h.sessions.Get(c.Request().Context(), id), true
}

// applyInput validates the mode before touching the text so a bad request changes nothing.
func applyInput(ctl *history.Controller, req inputRequest) (history.ViewState, error) {
	var mode model.SummaryType
	if req.Mode != "" {
		parsed, err := model.ParseSummaryType(req.Mode)
		if err != nil {
			return history.ViewState{}, history.ErrInvalidMode
		}
		mode = parsed
	}

	if mode == "" && req.Text == nil {
		return ctl.View(), nil
	}
	var view history.ViewState
	if mode != "" {
		view, _ = ctl.SetMode(mode)
	}
	if req.Text != nil {
		view = ctl.SetText(*req.Text)
	}
	return view, nil
}
