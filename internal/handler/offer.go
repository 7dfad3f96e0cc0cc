package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/service"
)

// OfferHandler bundles dependencies for the job offer endpoints.
type OfferHandler struct {
	Offers *service.OfferService
}

func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{Offers: offers}
}

type createOfferReq struct {
	Title          string   `json:"title" validate:"required,min=5,max=150"`
	Description    string   `json:"description" validate:"required,min=20"`
	CompanyID      *uint64  `json:"company_id"`
	JobType        string   `json:"job_type" validate:"required"`
	Location       string   `json:"location" validate:"required,max=150"`
	IsRemote       bool     `json:"is_remote"`
	SalaryMin      *int64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *int64   `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryCurrency *string  `json:"salary_currency" validate:"omitempty,len=3"`
	Status         string   `json:"status"`
	IsFeatured     bool     `json:"is_featured"`
	SkillIDs       []uint64 `json:"skill_ids" validate:"omitempty,dive,gt=0"`
}

type updateOfferReq struct {
	Title          *string        `json:"title" validate:"omitempty,min=5,max=150"`
	Description    *string        `json:"description" validate:"omitempty,min=20"`
	CompanyID      OptionalUint64 `json:"company_id"`
	JobType        *string        `json:"job_type"`
	Location       *string        `json:"location" validate:"omitempty,max=150"`
	IsRemote       *bool          `json:"is_remote"`
	SalaryMin      *int64         `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *int64         `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryCurrency *string        `json:"salary_currency" validate:"omitempty,len=3"`
	Status         *string        `json:"status"`
	IsFeatured     *bool          `json:"is_featured"`
	SkillIDs       *[]uint64      `json:"skill_ids" validate:"omitempty,dive,gt=0"`
}

// offerListInput builds the shared filter grammar from query params.
func offerListInput(c echo.Context) service.OfferListInput {
	return service.OfferListInput{
		Title:      c.QueryParam("title"),
		CompanyID:  queryUint64(c, "companyId"),
		JobType:    c.QueryParam("jobType"),
		Location:   c.QueryParam("location"),
		IsRemote:   queryBoolPtr(c, "isRemote"),
		MinSalary:  queryInt64Ptr(c, "minSalary"),
		Status:     c.QueryParam("status"),
		IsFeatured: queryBoolPtr(c, "isFeatured"),
		SkillIDs:   queryIDList(c, "skillIds"),
		OrderBy:    c.QueryParam("orderBy"),
		Skip:       queryInt(c, "skip", 0),
		Take:       queryInt(c, "take", 0),
	}
}

// Create posts a new job offer.
func (h *OfferHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	row, err := h.Offers.Create(ctx, id, service.CreateOfferInput{
		Title:          req.Title,
		Description:    req.Description,
		CompanyID:      req.CompanyID,
		JobType:        req.JobType,
		Location:       req.Location,
		IsRemote:       req.IsRemote,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		Status:         req.Status,
		IsFeatured:     req.IsFeatured,
		SkillIDs:       req.SkillIDs,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// List is the public browse over active offers.
func (h *OfferHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Offers.List(ctx, offerListInput(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}

// ListMine returns the caller's own offers with application counts.
func (h *OfferHandler) ListMine(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Offers.ListMine(ctx, id, offerListInput(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}

// ListAdmin returns all offers across owners and statuses.
func (h *OfferHandler) ListAdmin(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, count, err := h.Offers.ListAdmin(ctx, id, offerListInput(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: count})
}

// Get returns one offer with company, skills and timestamps.
func (h *OfferHandler) Get(c echo.Context) error {
	offerID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	row, err := h.Offers.Get(ctx, offerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

// Update patches an offer.
func (h *OfferHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return writeErr(c, err)
	}
	offerID, err := idParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	var req updateOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	row, err := h.Offers.Update(ctx, id, offerID, service.UpdateOfferInput{
		Title:          req.Title,
		Description:    req.Description,
		CompanyIDSet:   req.CompanyID.Set,
		CompanyID:      req.CompanyID.Value,
		JobType:        req.JobType,
		Location:       req.Location,
		IsRemote:       req.IsRemote,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		Status:         req.Status,
		IsFeatured:     req.IsFeatured,
		SkillIDs:       req.SkillIDs,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

// Delete removes an offer with its skill links and applications.
func (h *OfferHandler) Delete(c echo.Context) error {
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

	if err := h.Offers.Remove(ctx, id, offerID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
