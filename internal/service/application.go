package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
)

// ApplicationStore is the persistence surface the application service
// needs.
type ApplicationStore interface {
	Create(ctx context.Context, a *model.JobApplication) error
	ListByStudent(ctx context.Context, studentID uint64, skip, take int) ([]model.ApplicationRow, int64, error)
	ListByOffer(ctx context.Context, offerID uint64, skip, take int) ([]model.ApplicationRow, int64, error)
}

// ApplicationService handles student applications to job offers.
type ApplicationService struct {
	apps   ApplicationStore
	offers OfferStore
	events Events
}

func NewApplicationService(apps ApplicationStore, offers OfferStore, events Events) *ApplicationService {
	return &ApplicationService{apps: apps, offers: offers, events: events}
}

// Submit files an application for the calling student. The offer must
// exist and be open for applications, and a student can apply to a
// given offer only once.
func (s *ApplicationService) Submit(ctx context.Context, id authz.Identity, offerID uint64, coverLetter *string) (model.JobApplication, error) {
	if err := authz.Allow(authz.OpApplicationSubmit, id); err != nil {
		return model.JobApplication{}, fmt.Errorf("%w: only students can apply to job offers", ErrForbidden)
	}
	own, err := s.offers.GetOwnership(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return model.JobApplication{}, fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return model.JobApplication{}, err
	}
	if own.Status != model.StatusActive {
		return model.JobApplication{}, fmt.Errorf("%w: job offer is not accepting applications", ErrInvalidInput)
	}

	app := model.JobApplication{
		JobOfferID:  offerID,
		StudentID:   id.UserID,
		CoverLetter: coverLetter,
	}
	if err := s.apps.Create(ctx, &app); err != nil {
		if errors.Is(err, repository.ErrApplicationExists) {
			return model.JobApplication{}, fmt.Errorf("%w: you already applied to this job offer", ErrConflict)
		}
		return model.JobApplication{}, err
	}
	if s.events != nil {
		row, err := s.offers.GetByID(ctx, offerID)
		title := ""
		if err == nil {
			title = row.Title
		}
		s.events.ApplicationSubmitted(ctx, app, title)
	}
	return app, nil
}

// ListMine returns the calling student's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, id authz.Identity, skip, take int) ([]model.ApplicationRow, int64, error) {
	if err := authz.Allow(authz.OpApplicationListMine, id); err != nil {
		return nil, 0, fmt.Errorf("%w: only students can list their applications", ErrForbidden)
	}
	skip, take = normalizePage(skip, take)
	return s.apps.ListByStudent(ctx, id.UserID, skip, take)
}

// ListForOffer returns the applications filed against one offer, for
// the offer's poster or an admin.
func (s *ApplicationService) ListForOffer(ctx context.Context, id authz.Identity, offerID uint64, skip, take int) ([]model.ApplicationRow, int64, error) {
	own, err := s.offers.GetOwnership(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, 0, fmt.Errorf("%w: job offer %d", ErrNotFound, offerID)
		}
		return nil, 0, err
	}
	if err := authz.AllowOwned(authz.OpApplicationReview, id, own); err != nil {
		return nil, 0, fmt.Errorf("%w: you do not have permission to view these applications", ErrForbidden)
	}
	skip, take = normalizePage(skip, take)
	return s.apps.ListByOffer(ctx, offerID, skip, take)
}
