package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/service"
)

// ApplicationHandler bundles dependencies for the application endpoints.
type ApplicationHandler struct {
	Apps *service.ApplicationService
}

func NewApplicationHandler(apps *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps}
}

type applyReq struct {
	CoverLetter *string `json:"cover_letter" validate:"omitempty,max=5000"`
}

// Apply files the caller's application against an offer.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	offerID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	app, err := h.Apps.Submit(ctx, id, offerID, req.CoverLetter)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

// ListMine returns the caller's applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Apps.ListMine(ctx, id, queryInt(c, "skip", 0), queryInt(c, "take", 0))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}

// ListForOffer returns the applications against one offer for its
// poster or an admin.
func (h *ApplicationHandler) ListForOffer(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	offerID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Apps.ListForOffer(ctx, id, offerID, queryInt(c, "skip", 0), queryInt(c, "take", 0))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}
