package handlers

import (
	"net/http"

	"github.com/labstack/echo"
)

// HeartBeat reports process liveness.
func HeartBeat(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
