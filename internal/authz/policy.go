package authz

import (
	"errors"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// Operation names every access-controlled entry point. Handlers and
// services refer to operations by these constants so the role gate and
// the ownership gate cannot drift apart between similar endpoints.
type Operation string

const (
	OpCompanyCreate Operation = "company.create"
	OpCompanyUpdate Operation = "company.update"
	OpCompanyDelete Operation = "company.delete"

	OpOfferCreate    Operation = "offer.create"
	OpOfferUpdate    Operation = "offer.update"
	OpOfferDelete    Operation = "offer.delete"
	OpOfferListMine  Operation = "offer.list_mine"
	OpOfferListAdmin Operation = "offer.list_admin"

	OpApplicationSubmit   Operation = "application.submit"
	OpApplicationListMine Operation = "application.list_mine"
	OpApplicationReview   Operation = "application.review"
)

// ErrRoleNotAllowed is returned by Allow when the caller's role is not in
// the operation's allow-list. Handlers translate it into HTTP 403.
var ErrRoleNotAllowed = errors.New("role not allowed for this operation")

// ErrNotOwner is returned by AllowOwned when the caller passes the role
// gate but fails the ownership predicate. Handlers translate it into 403.
var ErrNotOwner = errors.New("caller does not own this resource")

// Resource exposes the ownership attributes the policy predicates check.
// Implementations return (0, false) for an inapplicable dimension.
type Resource interface {
	OwnerCompanyID() (uint64, bool)
	OwnerUserID() (uint64, bool)
}

// predicate decides whether a non-admin caller owns a resource. Admins
// never reach a predicate; Allowed short-circuits them.
type predicate func(id Identity, res Resource) bool

// sameCompany passes when the resource's owning company matches the
// caller's company. A caller without a company never passes.
func sameCompany(id Identity, res Resource) bool {
	cid, ok := res.OwnerCompanyID()
	if !ok || id.CompanyID == nil {
		return false
	}
	return cid == *id.CompanyID
}

// postedBy passes when the resource was created by the caller.
func postedBy(id Identity, res Resource) bool {
	uid, ok := res.OwnerUserID()
	return ok && uid == id.UserID
}

// rule pairs an operation's role allow-list with its optional ownership
// predicate.
type rule struct {
	roles map[string]bool
	owner predicate
}

func roleSet(roles ...string) map[string]bool {
	m := make(map[string]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return m
}

// policy is the single source of truth mapping operations to access
// rules. The role gate runs before any handler body; the ownership gate
// runs in the service after the existence check, so NotFound surfaces
// before Forbidden.
var policy = map[Operation]rule{
	OpCompanyCreate: {roles: roleSet(model.RoleAdmin, model.RoleRecruiter)},
	OpCompanyUpdate: {roles: roleSet(model.RoleAdmin, model.RoleRecruiter), owner: sameCompany},
	OpCompanyDelete: {roles: roleSet(model.RoleAdmin, model.RoleRecruiter), owner: sameCompany},

	OpOfferCreate:    {roles: roleSet(model.RoleAdmin, model.RoleRecruiter)},
	OpOfferUpdate:    {roles: roleSet(model.RoleAdmin, model.RoleRecruiter), owner: postedBy},
	OpOfferDelete:    {roles: roleSet(model.RoleAdmin, model.RoleRecruiter), owner: postedBy},
	OpOfferListMine:  {roles: roleSet(model.RoleRecruiter)},
	OpOfferListAdmin: {roles: roleSet(model.RoleAdmin)},

	OpApplicationSubmit:   {roles: roleSet(model.RoleStudent)},
	OpApplicationListMine: {roles: roleSet(model.RoleStudent)},
	OpApplicationReview:   {roles: roleSet(model.RoleAdmin, model.RoleRecruiter), owner: postedBy},
}

// Roles returns the allow-list for an operation. Unknown operations allow
// no one.
func Roles(op Operation) []string {
	r, ok := policy[op]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.roles))
	for role := range r.roles {
		out = append(out, role)
	}
	return out
}

// Allow applies the role gate only. It rejects any caller whose role is
// not in the operation's allow-list.
func Allow(op Operation, id Identity) error {
	r, ok := policy[op]
	if !ok || !r.roles[id.Role] {
		return ErrRoleNotAllowed
	}
	return nil
}

// AllowOwned applies the role gate and then the ownership gate against a
// concrete resource. ADMIN bypasses ownership. Operations without an
// ownership predicate behave exactly like Allow.
func AllowOwned(op Operation, id Identity, res Resource) error {
	r, ok := policy[op]
	if !ok || !r.roles[id.Role] {
		return ErrRoleNotAllowed
	}
	if r.owner == nil || id.IsAdmin() {
		return nil
	}
	if !r.owner(id, res) {
		return ErrNotOwner
	}
	return nil
}
