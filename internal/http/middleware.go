package http

import (
	"crypto/subtle"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"boildown/internal/handler"
	"boildown/internal/logger"
)

// ClientCookieName identifies a browser profile across requests.
const ClientCookieName = "boildown_client"

const clientCookieMaxAge = 400 * 24 * 60 * 60

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			result := "ok"
			if status >= 400 {
				result = "failed"
			}
			attrs := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"result", result,
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			}

			switch {
			case status >= 500:
				logger.Error("http request", attrs...)
			case status >= 400:
				logger.Warn("http request", attrs...)
			default:
				logger.Debug("http request", attrs...)
			}

			return nil
		}
	}
}

// ClientIDMiddleware reads the client cookie, issuing a new UUID when it is
// missing or not a UUID, and stores the id under handler.ClientIDKey.
func ClientIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(ClientCookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					c.Set(handler.ClientIDKey, id.String())
					return next(c)
				}
			}

			id := uuid.NewString()
			c.SetCookie(&nethttp.Cookie{
				Name:     ClientCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   clientCookieMaxAge,
				HttpOnly: true,
				SameSite: nethttp.SameSiteLaxMode,
				Secure:   c.Scheme() == "https",
			})
			c.Set(handler.ClientIDKey, id)
			logger.Debug("client id issued", "module", "http", "action", "create", "resource", "client", "result", "ok", "remote_ip", c.RealIP())
			return next(c)
		}
	}
}

// SettingsAuthMiddleware requires "Authorization: Bearer <token>" matching the
// configured admin token.
func SettingsAuthMiddleware(token string) echo.MiddlewareFunc {
	expected := []byte(token)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			got, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || got == "" {
				logger.Warn("auth missing", "module", "http", "action", "request", "resource", "settings", "result", "failed", "method", c.Request().Method, "path", c.Request().URL.Path, "remote_ip", c.RealIP())
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{
					"error": "missing authentication",
				})
			}
			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), expected) != 1 {
				logger.Warn("auth invalid", "module", "http", "action", "request", "resource", "settings", "result", "failed", "method", c.Request().Method, "path", c.Request().URL.Path, "remote_ip", c.RealIP())
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{
					"error": "invalid token",
				})
			}
			return next(c)
		}
	}
}
