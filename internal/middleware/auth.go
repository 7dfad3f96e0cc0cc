package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/utils"
)

// identityKey is the echo context key under which the resolved caller
// identity is stored.
const identityKey = "identity"

// Identifier resolves a parsed token payload into a live caller
// identity, rejecting tokens whose user is gone or whose role changed
// since issuance.
type Identifier interface {
	Identify(ctx context.Context, p utils.TokenPayload) (authz.Identity, error)
}

// Authenticate validates the Bearer token on protected routes and
// stores the caller's identity in the request context. Parsing and the
// live user check both fail with 401.
func Authenticate(secret string, ids Identifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			payload, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			id, err := ids.Identify(c.Request().Context(), payload)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// Caller returns the identity stored by Authenticate. The boolean is
// false on routes that were not wrapped by it.
func Caller(c echo.Context) (authz.Identity, bool) {
	id, ok := c.Get(identityKey).(authz.Identity)
	return id, ok
}
