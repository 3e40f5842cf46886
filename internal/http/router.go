package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "boildown/docs"
	"boildown/internal/handler"
	"boildown/internal/logger"
)

func NewRouter(
	pageHandler *handler.PageHandler,
	historyHandler *handler.HistoryHandler,
	settingsHandler *handler.SettingsHandler,
	metricsHandler nethttp.Handler,
	staticDir string,
	settingsToken string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	client := ClientIDMiddleware()

	pages := e.Group("", client)
	pageHandler.RegisterRoutes(pages)

	api := e.Group("/api")
	historyHandler.RegisterRoutes(api.Group("", client))
	// Settings can redirect the stored API key, so they stay off without an admin token.
	if settingsToken != "" {
		settingsHandler.RegisterRoutes(api.Group("", SettingsAuthMiddleware(settingsToken)))
	} else {
		logger.Info("settings api disabled", "module", "http", "action", "register", "resource", "settings", "result", "skipped")
	}

	registerStatic(e, staticDir)

	return e
}
