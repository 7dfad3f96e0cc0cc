package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/middleware"
	"github.com/jortega-dev/job-board-api/internal/service"
)

// dbTimeout bounds every request-scoped database call.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// writeErr translates the service error taxonomy into an HTTP response.
// Anything outside the taxonomy is logged and returned as a generic 500
// so internals never leak to clients.
func writeErr(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, echo.Map{"error": he.Message})
	}
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

// caller returns the authenticated identity or a 401 error for routes
// that were somehow reached without the auth middleware.
func caller(c echo.Context) (authz.Identity, error) {
	id, ok := middleware.Caller(c)
	if !ok {
		return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return id, nil
}

// listResp is the envelope shared by every collection endpoint: the page
// of rows plus the total count from the same snapshot.
type listResp struct {
	Data  interface{} `json:"data"`
	Count int64       `json:"count"`
}

func idParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func queryBoolPtr(c echo.Context, name string) *bool {
	switch strings.ToLower(c.QueryParam(name)) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	}
	return nil
}

func queryInt64Ptr(c echo.Context, name string) *int64 {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func queryUint64(c echo.Context, name string) uint64 {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// queryIDList parses a comma-separated id list ("1,4,9").
func queryIDList(c echo.Context, name string) []uint64 {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	var out []uint64
	for _, p := range strings.Split(v, ",") {
		if n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// OptionalUint64 distinguishes an absent JSON field from an explicit
// null: Set reports presence, Value is nil for null.
type OptionalUint64 struct {
	Set   bool
	Value *uint64
}

func (o *OptionalUint64) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var n uint64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	o.Value = &n
	return nil
}
