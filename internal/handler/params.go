package handler

import (
	"github.com/labstack/echo/v4"
)

// ClientIDKey is the echo context key holding the caller's client id.
const ClientIDKey = "clientID"

func clientID(c echo.Context) string {
	id, _ := c.Get(ClientIDKey).(string)
	return id
}
