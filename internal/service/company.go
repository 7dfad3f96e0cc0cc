package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
)

// CompanyStore is the persistence surface the company service needs.
type CompanyStore interface {
	Create(ctx context.Context, c *model.Company) error
	Search(ctx context.Context, f repository.CompanyFilter) ([]model.CompanyWithStats, int64, error)
	GetByID(ctx context.Context, id uint64) (model.CompanyWithStats, error)
	Update(ctx context.Context, id uint64, u repository.CompanyUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// RecruiterLister resolves the recruiters attached to a company for the
// findOne view.
type RecruiterLister interface {
	ListRecruitersByCompany(ctx context.Context, companyID uint64) ([]model.PublicUser, error)
}

// CompanyService applies the authorization policy and shapes company
// rows into response payloads.
type CompanyService struct {
	companies CompanyStore
	users     RecruiterLister
}

func NewCompanyService(companies CompanyStore, users RecruiterLister) *CompanyService {
	return &CompanyService{companies: companies, users: users}
}

// Create persists a new company. Unique-constraint violations on the
// contact email are surfaced as a permission error ("already exists"),
// preserving the platform's existing API contract.
func (s *CompanyService) Create(ctx context.Context, id authz.Identity, c *model.Company) error {
	if err := authz.Allow(authz.OpCompanyCreate, id); err != nil {
		return fmt.Errorf("%w: role %s may not create companies", ErrForbidden, id.Role)
	}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: company with this email already exists", ErrForbidden)
		}
		return err
	}
	return nil
}

// ListInput carries the public listing filters.
type ListInput struct {
	Name       string
	Location   string
	IsVerified *bool
	Skip       int
	Take       int
}

// List runs the filtered, paginated company listing. Data and total
// count come from the same snapshot read.
func (s *CompanyService) List(ctx context.Context, in ListInput) ([]model.CompanyWithStats, int64, error) {
	skip, take := normalizePage(in.Skip, in.Take)
	return s.companies.Search(ctx, repository.CompanyFilter{
		Name:       in.Name,
		Location:   in.Location,
		IsVerified: in.IsVerified,
		Skip:       skip,
		Take:       take,
	})
}

// Get returns the detail view of a company: row, offer count and
// attached recruiters.
func (s *CompanyService) Get(ctx context.Context, companyID uint64) (model.CompanyDetail, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return model.CompanyDetail{}, fmt.Errorf("%w: company %d", ErrNotFound, companyID)
		}
		return model.CompanyDetail{}, err
	}
	recruiters, err := s.users.ListRecruitersByCompany(ctx, companyID)
	if err != nil {
		return model.CompanyDetail{}, err
	}
	return model.CompanyDetail{CompanyWithStats: c, Recruiters: recruiters}, nil
}

// Update mutates a company after the existence check and the ownership
// gate, in that order: a missing company surfaces NotFound even to
// callers who would also have failed the ownership check.
func (s *CompanyService) Update(ctx context.Context, id authz.Identity, companyID uint64, u repository.CompanyUpdate) (model.CompanyWithStats, error) {
	existing, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return model.CompanyWithStats{}, fmt.Errorf("%w: company %d", ErrNotFound, companyID)
		}
		return model.CompanyWithStats{}, err
	}
	if err := authz.AllowOwned(authz.OpCompanyUpdate, id, existing.Company); err != nil {
		return model.CompanyWithStats{}, fmt.Errorf("%w: you do not have permission to update this company", ErrForbidden)
	}
	if err := s.companies.Update(ctx, companyID, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.CompanyWithStats{}, fmt.Errorf("%w: company with this email already exists", ErrForbidden)
		}
		return model.CompanyWithStats{}, err
	}
	return s.companies.GetByID(ctx, companyID)
}

// Remove deletes a company with the same existence-then-ownership order
// as Update.
func (s *CompanyService) Remove(ctx context.Context, id authz.Identity, companyID uint64) error {
	existing, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return fmt.Errorf("%w: company %d", ErrNotFound, companyID)
		}
		return err
	}
	if err := authz.AllowOwned(authz.OpCompanyDelete, id, existing.Company); err != nil {
		return fmt.Errorf("%w: you do not have permission to delete this company", ErrForbidden)
	}
	return s.companies.Delete(ctx, companyID)
}
