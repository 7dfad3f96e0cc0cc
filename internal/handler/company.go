package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
	"github.com/jortega-dev/job-board-api/internal/service"
)

// CompanyHandler bundles dependencies for the company endpoints.
type CompanyHandler struct {
	Companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{Companies: companies}
}

type createCompanyReq struct {
	Name         string  `json:"name" validate:"required,min=2,max=150"`
	Industry     *string `json:"industry" validate:"omitempty,max=100"`
	Location     *string `json:"location" validate:"omitempty,max=150"`
	Size         *string `json:"size" validate:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	WebsiteURL   *string `json:"website_url" validate:"omitempty,url"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
}

type updateCompanyReq struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=150"`
	Industry     *string `json:"industry" validate:"omitempty,max=100"`
	Location     *string `json:"location" validate:"omitempty,max=150"`
	Size         *string `json:"size" validate:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	WebsiteURL   *string `json:"website_url" validate:"omitempty,url"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	IsVerified   *bool   `json:"is_verified"`
}

// Create registers a new company.
func (h *CompanyHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	var req createCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	company := model.Company{
		Name:         req.Name,
		Industry:     req.Industry,
		Location:     req.Location,
		Size:         req.Size,
		ContactEmail: req.ContactEmail,
		WebsiteURL:   req.WebsiteURL,
		LogoURL:      req.LogoURL,
		Description:  req.Description,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Companies.Create(ctx, id, &company); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, company)
}

// List is the public filtered, paginated company browse.
func (h *CompanyHandler) List(c echo.Context) error {
	in := service.ListInput{
		Name:       c.QueryParam("name"),
		Location:   c.QueryParam("location"),
		IsVerified: queryBoolPtr(c, "isVerified"),
		Skip:       queryInt(c, "skip", 0),
		Take:       queryInt(c, "take", 0),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Companies.List(ctx, in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}

// Get returns one company with its offer count and recruiters.
func (h *CompanyHandler) Get(c echo.Context) error {
	companyID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Companies.Get(ctx, companyID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update patches a company.
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	companyID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	var req updateCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	// Verification is an admin-only toggle regardless of ownership.
	if req.IsVerified != nil && !id.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only admins can change the verification flag"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	row, err := h.Companies.Update(ctx, id, companyID, repository.CompanyUpdate{
		Name:         req.Name,
		Industry:     req.Industry,
		Location:     req.Location,
		Size:         req.Size,
		ContactEmail: req.ContactEmail,
		WebsiteURL:   req.WebsiteURL,
		LogoURL:      req.LogoURL,
		Description:  req.Description,
		IsVerified:   req.IsVerified,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

// Delete removes a company.
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	companyID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Companies.Remove(ctx, id, companyID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
