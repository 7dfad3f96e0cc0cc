package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe endpoint. It returns a plain "ok" with
// HTTP 200 so load balancers can verify the service is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
