package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/authz"
)

// Require gates a route on the policy's role allow-list for the given
// operation. Ownership checks stay in the services, after the existence
// check; this middleware only rejects callers whose role can never
// perform the operation. It assumes Authenticate ran earlier in the
// chain.
func Require(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := Caller(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if err := authz.Allow(op, id); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
