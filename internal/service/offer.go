package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
)

// OfferStore is the persistence surface the offer service needs.
type OfferStore interface {
	Create(ctx context.Context, o *model.JobOffer, skillIDs []uint64) error
	Search(ctx context.Context, f repository.OfferFilter) ([]model.JobOfferRow, int64, error)
	GetByID(ctx context.Context, id uint64) (model.JobOfferRow, error)
	GetOwnership(ctx context.Context, id uint64) (repository.OfferOwnership, error)
	Update(ctx context.Context, id uint64, u repository.OfferUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// SkillChecker pre-validates referenced skill ids.
type SkillChecker interface {
	CountExisting(ctx context.Context, ids []uint64) (int, error)
}

// CompanyChecker verifies target companies exist when admins attach
// offers to them.
type CompanyChecker interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// Events receives best-effort domain event notifications after
// successful mutations. Implementations must never fail the request.
type Events interface {
	OfferPublished(ctx context.Context, offer model.JobOfferRow)
	ApplicationSubmitted(ctx context.Context, app model.JobApplication, offerTitle string)
}

// OfferService applies the authorization policy, validates offer
// payloads and builds the filtered queries behind every listing.
type OfferService struct {
	offers    OfferStore
	skills    SkillChecker
	companies CompanyChecker
	events    Events
}

func NewOfferService(offers OfferStore, skills SkillChecker, companies CompanyChecker, events Events) *OfferService {
	return &OfferService{offers: offers, skills: skills, companies: companies, events: events}
}

// Sort-key allow-lists per listing variant. Only the admin listing may
// sort on the joined company name.
var (
	publicSortKeys = map[string]bool{"createdAt": true, "title": true, "location": true, "salaryMin": true}
	mineSortKeys   = map[string]bool{"createdAt": true, "title": true, "location": true, "salaryMin": true, "status": true}
	adminSortKeys  = map[string]bool{"createdAt": true, "updatedAt": true, "title": true, "location": true, "salaryMin": true, "status": true, "company.name": true}
)

// CreateOfferInput is the creation payload. CompanyID is honored only
// for admins; recruiters always post for their own company.
type CreateOfferInput struct {
	Title          string
	Description    string
	CompanyID      *uint64
	JobType        string
	Location       string
	IsRemote       bool
	SalaryMin      *int64
	SalaryMax      *int64
	SalaryCurrency *string
	Status         string
	IsFeatured     bool
	SkillIDs       []uint64
}

// Create persists a new offer. Recruiters must be attached to a company
// and always post for it; a company id in the payload is ignored.
// Admins must name an existing target company. Every referenced skill id
// must resolve before the row is written.
func (s *OfferService) Create(ctx context.Context, id authz.Identity, in CreateOfferInput) (model.JobOfferRow, error) {
	if err := authz.Allow(authz.OpOfferCreate, id); err != nil {
		return model.JobOfferRow{}, fmt.Errorf("%w: role %s may not post job offers", ErrForbidden, id.Role)
	}

	var targetCompany uint64
	switch {
	case id.IsAdmin():
		if in.CompanyID == nil {
			return model.JobOfferRow{}, fmt.Errorf("%w: admin must provide a company id to create a job offer", ErrInvalidInput)
		}
		ok, err := s.companies.Exists(ctx, *in.CompanyID)
		if err != nil {
			return model.JobOfferRow{}, err
		}
		if !ok {
			return model.JobOfferRow{}, fmt.Errorf("%w: company %d", ErrNotFound, *in.CompanyID)
		}
		targetCompany = *in.CompanyID
	default: // recruiter, per the role gate above
		if id.CompanyID == nil {
			return model.JobOfferRow{}, fmt.Errorf("%w: only recruiters associated with a company can post job offers", ErrForbidden)
		}
		targetCompany = *id.CompanyID
	}

	if !model.ValidJobType(in.JobType) {
		return model.JobOfferRow{}, fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, in.JobType)
	}
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !model.ValidStatus(status) {
		return model.JobOfferRow{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	skillIDs := dedupe(in.SkillIDs)
	if err := s.checkSkills(ctx, skillIDs); err != nil {
		return model.JobOfferRow{}, err
	}

	offer := model.JobOffer{
		Title:          in.Title,
		Description:    in.Description,
		CompanyID:      targetCompany,
		PostedByID:     id.UserID,
		JobType:        in.JobType,
		Location:       in.Location,
		IsRemote:       in.IsRemote,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
		SalaryCurrency: in.SalaryCurrency,
		Status:         status,
		IsFeatured:     in.IsFeatured,
	}
	if err := s.offers.Create(ctx, &offer, skillIDs); err != nil {
		return model.JobOfferRow{}, err
	}
	row, err := s.offers.GetByID(ctx, offer.ID)
	if err != nil {
		return model.JobOfferRow{}, err
	}
	if row.Status == model.StatusActive && s.events != nil {
		s.events.OfferPublished(ctx, row)
	}
	return row, nil
}

// OfferListInput is the filter grammar shared by all offer listings.
type OfferListInput struct {
	Title      string
	CompanyID  uint64
	JobType    string
	Location   string
	IsRemote   *bool
	MinSalary  *int64
	Status     string
	IsFeatured *bool
	SkillIDs   []uint64
	OrderBy    string
	Skip       int
	Take       int
}

func (s *OfferService) validateListInput(in OfferListInput) error {
	if in.Status != "" && !model.ValidStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if in.JobType != "" && !model.ValidJobType(in.JobType) {
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, in.JobType)
	}
	return nil
}

func (s *OfferService) baseFilter(in OfferListInput, sortKeys map[string]bool) repository.OfferFilter {
	skip, take := normalizePage(in.Skip, in.Take)
	key, desc := parseOrder(in.OrderBy, sortKeys)
	return repository.OfferFilter{
		Title:      in.Title,
		CompanyID:  in.CompanyID,
		JobType:    in.JobType,
		Location:   in.Location,
		IsRemote:   in.IsRemote,
		MinSalary:  in.MinSalary,
		Status:     in.Status,
		IsFeatured: in.IsFeatured,
		SkillIDs:   dedupe(in.SkillIDs),
		OrderKey:   key,
		OrderDesc:  desc,
		Skip:       skip,
		Take:       take,
	}
}

// List is the public browse: when no status filter is given only ACTIVE
// offers are returned, distinguishing public browsing from the owner and
// admin listings.
func (s *OfferService) List(ctx context.Context, in OfferListInput) ([]model.JobOfferRow, int64, error) {
	if err := s.validateListInput(in); err != nil {
		return nil, 0, err
	}
	if in.Status == "" {
		in.Status = model.StatusActive
	}
	f := s.baseFilter(in, publicSortKeys)
	return s.offers.Search(ctx, f)
}

// ListMine returns the caller's own offers across all statuses, so
// drafts stay visible to their owner. Rows carry application counts.
func (s *OfferService) ListMine(ctx context.Context, id authz.Identity, in OfferListInput) ([]model.JobOfferRow, int64, error) {
	if err := authz.Allow(authz.OpOfferListMine, id); err != nil {
		return nil, 0, fmt.Errorf("%w: only recruiters can access their job offers", ErrForbidden)
	}
	if err := s.validateListInput(in); err != nil {
		return nil, 0, err
	}
	f := s.baseFilter(in, mineSortKeys)
	f.PostedByID = id.UserID
	f.WithApplicationCounts = true
	return s.offers.Search(ctx, f)
}

// ListAdmin returns every offer regardless of owner or status, with the
// poster view and application counts, and the extra company.name sort.
func (s *OfferService) ListAdmin(ctx context.Context, id authz.Identity, in OfferListInput) ([]model.JobOfferRow, int64, error) {
	if err := authz.Allow(authz.OpOfferListAdmin, id); err != nil {
		return nil, 0, fmt.Errorf("%w: only admins can access this resource", ErrForbidden)
	}
	if err := s.validateListInput(in); err != nil {
		return nil, 0, err
	}
	f := s.baseFilter(in, adminSortKeys)
	f.WithApplicationCounts = true
	f.WithPoster = true
	return s.offers.Search(ctx, f)
}

// Get returns the public detail view of an offer.
func (s *OfferService) Get(ctx context.Context, offerID uint64) (model.JobOfferRow, error) {
	row, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return model.JobOfferRow{}, fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return model.JobOfferRow{}, err
	}
	return row, nil
}

// UpdateOfferInput is the PATCH payload. CompanyIDSet distinguishes an
// absent company_id from an explicit null (CompanyID == nil while set).
type UpdateOfferInput struct {
	Title          *string
	Description    *string
	CompanyIDSet   bool
	CompanyID      *uint64
	JobType        *string
	Location       *string
	IsRemote       *bool
	SalaryMin      *int64
	SalaryMax      *int64
	SalaryCurrency *string
	Status         *string
	IsFeatured     *bool
	SkillIDs       *[]uint64
}

// Update mutates an offer: existence check, then ownership gate, then
// field validation. Only admins may move an offer to another (existing)
// company; an explicit null company is rejected; status changes must
// follow the lifecycle graph; a supplied skill list replaces the set.
func (s *OfferService) Update(ctx context.Context, id authz.Identity, offerID uint64, in UpdateOfferInput) (model.JobOfferRow, error) {
	own, err := s.offers.GetOwnership(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return model.JobOfferRow{}, fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return model.JobOfferRow{}, err
	}
	if err := authz.AllowOwned(authz.OpOfferUpdate, id, own); err != nil {
		return model.JobOfferRow{}, fmt.Errorf("%w: you do not have permission to update this job offer", ErrForbidden)
	}

	u := repository.OfferUpdate{
		Title:          in.Title,
		Description:    in.Description,
		JobType:        in.JobType,
		Location:       in.Location,
		IsRemote:       in.IsRemote,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
		SalaryCurrency: in.SalaryCurrency,
		IsFeatured:     in.IsFeatured,
	}

	if in.CompanyIDSet {
		switch {
		case !id.IsAdmin():
			return model.JobOfferRow{}, fmt.Errorf("%w: recruiters cannot change the company of a job offer", ErrForbidden)
		case in.CompanyID == nil:
			return model.JobOfferRow{}, fmt.Errorf("%w: cannot remove company association", ErrInvalidInput)
		case *in.CompanyID != own.CompanyID:
			ok, err := s.companies.Exists(ctx, *in.CompanyID)
			if err != nil {
				return model.JobOfferRow{}, err
			}
			if !ok {
				return model.JobOfferRow{}, fmt.Errorf("%w: company %d", ErrNotFound, *in.CompanyID)
			}
			u.CompanyID = in.CompanyID
		}
	}

	if in.JobType != nil && !model.ValidJobType(*in.JobType) {
		return model.JobOfferRow{}, fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, *in.JobType)
	}
	if in.Status != nil {
		if !model.ValidStatus(*in.Status) {
			return model.JobOfferRow{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
		}
		if !model.CanTransition(own.Status, *in.Status) {
			return model.JobOfferRow{}, fmt.Errorf("%w: cannot move offer from %s to %s", ErrInvalidInput, own.Status, *in.Status)
		}
		u.Status = in.Status
	}
	if in.SkillIDs != nil {
		skillIDs := dedupe(*in.SkillIDs)
		if err := s.checkSkills(ctx, skillIDs); err != nil {
			return model.JobOfferRow{}, err
		}
		u.Skills = &skillIDs
	}

	if err := s.offers.Update(ctx, offerID, u); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return model.JobOfferRow{}, fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return model.JobOfferRow{}, err
	}
	row, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return model.JobOfferRow{}, err
	}
	if in.Status != nil && *in.Status == model.StatusActive && own.Status != model.StatusActive && s.events != nil {
		s.events.OfferPublished(ctx, row)
	}
	return row, nil
}

// Remove deletes an offer with the same existence-then-ownership order
// as Update.
func (s *OfferService) Remove(ctx context.Context, id authz.Identity, offerID uint64) error {
	own, err := s.offers.GetOwnership(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return err
	}
	if err := authz.AllowOwned(authz.OpOfferDelete, id, own); err != nil {
		return fmt.Errorf("%w: you do not have permission to delete this job offer", ErrForbidden)
	}
	return s.offers.Delete(ctx, offerID)
}

// checkSkills rejects the request when any referenced skill id does not
// resolve to an existing skill. This runs before the offer row is
// touched; it is a pre-validation step, not a constraint fallback.
func (s *OfferService) checkSkills(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := s.skills.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if n != len(ids) {
		return fmt.Errorf("%w: one or more required skill ids are invalid", ErrInvalidInput)
	}
	return nil
}

func dedupe(ids []uint64) []uint64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
