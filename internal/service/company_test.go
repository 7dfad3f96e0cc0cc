package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
)

// fakeCompanies is an in-memory CompanyStore and RecruiterLister.
type fakeCompanies struct {
	companies  map[uint64]model.Company
	recruiters map[uint64][]model.PublicUser
	nextID     uint64
	lastFilter repository.CompanyFilter
	lastUpdate repository.CompanyUpdate
	updateErr  error
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{companies: map[uint64]model.Company{}, recruiters: map[uint64][]model.PublicUser{}, nextID: 1}
}

func (f *fakeCompanies) add(c model.Company) model.Company {
	if c.ID == 0 {
		c.ID = f.nextID
		f.nextID++
	}
	f.companies[c.ID] = c
	return c
}

func (f *fakeCompanies) Create(_ context.Context, c *model.Company) error {
	if c.ContactEmail != nil {
		for _, have := range f.companies {
			if have.ContactEmail != nil && *have.ContactEmail == *c.ContactEmail {
				return repository.ErrDuplicate
			}
		}
	}
	*c = f.add(*c)
	return nil
}

func (f *fakeCompanies) Search(_ context.Context, filter repository.CompanyFilter) ([]model.CompanyWithStats, int64, error) {
	f.lastFilter = filter
	out := make([]model.CompanyWithStats, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, model.CompanyWithStats{Company: c})
	}
	return out, int64(len(f.companies)), nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id uint64) (model.CompanyWithStats, error) {
	c, ok := f.companies[id]
	if !ok {
		return model.CompanyWithStats{}, repository.ErrCompanyNotFound
	}
	return model.CompanyWithStats{Company: c}, nil
}

func (f *fakeCompanies) Update(_ context.Context, id uint64, u repository.CompanyUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.companies[id]; !ok {
		return repository.ErrCompanyNotFound
	}
	f.lastUpdate = u
	return nil
}

func (f *fakeCompanies) Delete(_ context.Context, id uint64) error {
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanies) ListRecruitersByCompany(_ context.Context, companyID uint64) ([]model.PublicUser, error) {
	return f.recruiters[companyID], nil
}

func studentID() authz.Identity {
	return authz.Identity{UserID: 10, Role: model.RoleStudent}
}

func recruiterID(companyID uint64) authz.Identity {
	return authz.Identity{UserID: 20, Role: model.RoleRecruiter, CompanyID: &companyID}
}

func adminID() authz.Identity {
	return authz.Identity{UserID: 1, Role: model.RoleAdmin}
}

func TestCompanyCreateRoleGate(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)

	err := svc.Create(context.Background(), studentID(), &model.Company{Name: "Acme"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("student create err = %v, want ErrForbidden", err)
	}
	if err := svc.Create(context.Background(), recruiterID(1), &model.Company{Name: "Acme"}); err != nil {
		t.Fatalf("recruiter create: %v", err)
	}
}

func TestCompanyCreateDuplicateEmailIsForbidden(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)
	email := "jobs@acme.com"

	if err := svc.Create(context.Background(), adminID(), &model.Company{Name: "Acme", ContactEmail: &email}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := svc.Create(context.Background(), adminID(), &model.Company{Name: "Acme Two", ContactEmail: &email})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden on duplicate contact email", err)
	}
}

func TestCompanyListNormalizesPagination(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)

	if _, _, err := svc.List(context.Background(), ListInput{Skip: -5, Take: 1000}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastFilter.Skip != 0 {
		t.Errorf("Skip = %d, want 0", store.lastFilter.Skip)
	}
	if store.lastFilter.Take != maxTake {
		t.Errorf("Take = %d, want clamped to %d", store.lastFilter.Take, maxTake)
	}
}

func TestCompanyGetIncludesRecruiters(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)
	c := store.add(model.Company{Name: "Acme"})
	store.recruiters[c.ID] = []model.PublicUser{{ID: 20, Email: "rec@acme.com", Role: model.RoleRecruiter}}

	detail, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Recruiters) != 1 || detail.Recruiters[0].Email != "rec@acme.com" {
		t.Errorf("recruiters = %+v, want the attached recruiter", detail.Recruiters)
	}
}

func TestCompanyUpdateNotFoundBeforeForbidden(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)

	// The caller would also fail the ownership gate; existence is
	// still checked first.
	_, err := svc.Update(context.Background(), recruiterID(99), 404, repository.CompanyUpdate{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound before the ownership check", err)
	}
}

func TestCompanyUpdateOwnership(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)
	c := store.add(model.Company{Name: "Acme"})
	other := store.add(model.Company{Name: "Globex"})
	name := "Acme GmbH"

	_, err := svc.Update(context.Background(), recruiterID(other.ID), c.ID, repository.CompanyUpdate{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign recruiter err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Update(context.Background(), recruiterID(c.ID), c.ID, repository.CompanyUpdate{Name: &name}); err != nil {
		t.Fatalf("owning recruiter update: %v", err)
	}
	if store.lastUpdate.Name == nil || *store.lastUpdate.Name != name {
		t.Errorf("update not forwarded to the store")
	}
	if _, err := svc.Update(context.Background(), adminID(), c.ID, repository.CompanyUpdate{Name: &name}); err != nil {
		t.Fatalf("admin bypasses ownership: %v", err)
	}
}

func TestCompanyUpdateDuplicateEmailIsForbidden(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)
	c := store.add(model.Company{Name: "Acme"})
	store.updateErr = repository.ErrDuplicate
	email := "jobs@globex.com"

	_, err := svc.Update(context.Background(), adminID(), c.ID, repository.CompanyUpdate{ContactEmail: &email})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden on duplicate contact email", err)
	}
}

func TestCompanyRemoveOrdering(t *testing.T) {
	store := newFakeCompanies()
	svc := NewCompanyService(store, store)
	c := store.add(model.Company{Name: "Acme"})

	if err := svc.Remove(context.Background(), recruiterID(99), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing company err = %v, want ErrNotFound", err)
	}
	if err := svc.Remove(context.Background(), recruiterID(99), c.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign recruiter err = %v, want ErrForbidden", err)
	}
	if err := svc.Remove(context.Background(), recruiterID(c.ID), c.ID); err != nil {
		t.Fatalf("owning recruiter remove: %v", err)
	}
	if _, ok := store.companies[c.ID]; ok {
		t.Errorf("company still present after remove")
	}
}
