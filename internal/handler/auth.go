package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerReq struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Register creates a STUDENT account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Register(ctx, service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tok, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.Token, ExpiresAt: tok.Exp})
}

// Me returns the live profile of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Profile(ctx, id.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
