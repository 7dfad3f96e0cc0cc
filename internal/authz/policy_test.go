package authz

import (
	"testing"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// ownedRes is a minimal Resource for predicate tests.
type ownedRes struct {
	companyID *uint64
	userID    *uint64
}

func (r ownedRes) OwnerCompanyID() (uint64, bool) {
	if r.companyID == nil {
		return 0, false
	}
	return *r.companyID, true
}

func (r ownedRes) OwnerUserID() (uint64, bool) {
	if r.userID == nil {
		return 0, false
	}
	return *r.userID, true
}

func u64(v uint64) *uint64 { return &v }

func TestAllow_RoleGate(t *testing.T) {
	cases := []struct {
		op      Operation
		role    string
		allowed bool
	}{
		{OpCompanyCreate, model.RoleAdmin, true},
		{OpCompanyCreate, model.RoleRecruiter, true},
		{OpCompanyCreate, model.RoleStudent, false},
		{OpOfferListMine, model.RoleRecruiter, true},
		{OpOfferListMine, model.RoleAdmin, false},
		{OpOfferListAdmin, model.RoleAdmin, true},
		{OpOfferListAdmin, model.RoleRecruiter, false},
		{OpApplicationSubmit, model.RoleStudent, true},
		{OpApplicationSubmit, model.RoleRecruiter, false},
		{Operation("unknown.op"), model.RoleAdmin, false},
	}
	for _, c := range cases {
		err := Allow(c.op, Identity{Role: c.role})
		if c.allowed && err != nil {
			t.Errorf("Allow(%s, %s) = %v, want nil", c.op, c.role, err)
		}
		if !c.allowed && err != ErrRoleNotAllowed {
			t.Errorf("Allow(%s, %s) = %v, want ErrRoleNotAllowed", c.op, c.role, err)
		}
	}
}

func TestAllowOwned_AdminBypassesOwnership(t *testing.T) {
	admin := Identity{UserID: 1, Role: model.RoleAdmin}
	res := ownedRes{companyID: u64(99), userID: u64(99)}

	if err := AllowOwned(OpCompanyUpdate, admin, res); err != nil {
		t.Errorf("AllowOwned(company.update, admin) = %v, want nil", err)
	}
	if err := AllowOwned(OpOfferDelete, admin, res); err != nil {
		t.Errorf("AllowOwned(offer.delete, admin) = %v, want nil", err)
	}
}

func TestAllowOwned_SameCompany(t *testing.T) {
	rec := Identity{UserID: 7, Role: model.RoleRecruiter, CompanyID: u64(3)}

	if err := AllowOwned(OpCompanyUpdate, rec, ownedRes{companyID: u64(3)}); err != nil {
		t.Errorf("same company = %v, want nil", err)
	}
	if err := AllowOwned(OpCompanyUpdate, rec, ownedRes{companyID: u64(4)}); err != ErrNotOwner {
		t.Errorf("other company = %v, want ErrNotOwner", err)
	}

	// Recruiter without a company never owns anything.
	orphan := Identity{UserID: 7, Role: model.RoleRecruiter}
	if err := AllowOwned(OpCompanyUpdate, orphan, ownedRes{companyID: u64(3)}); err != ErrNotOwner {
		t.Errorf("companyless recruiter = %v, want ErrNotOwner", err)
	}
}

func TestAllowOwned_PostedBy(t *testing.T) {
	rec := Identity{UserID: 7, Role: model.RoleRecruiter, CompanyID: u64(3)}

	if err := AllowOwned(OpOfferUpdate, rec, ownedRes{userID: u64(7)}); err != nil {
		t.Errorf("own offer = %v, want nil", err)
	}
	if err := AllowOwned(OpOfferUpdate, rec, ownedRes{userID: u64(8)}); err != ErrNotOwner {
		t.Errorf("someone else's offer = %v, want ErrNotOwner", err)
	}
}

func TestAllowOwned_RoleGateRunsFirst(t *testing.T) {
	student := Identity{UserID: 7, Role: model.RoleStudent}
	// Even a student who would satisfy the ownership predicate is
	// rejected on role before ownership is consulted.
	if err := AllowOwned(OpOfferUpdate, student, ownedRes{userID: u64(7)}); err != ErrRoleNotAllowed {
		t.Errorf("student on offer.update = %v, want ErrRoleNotAllowed", err)
	}
}
