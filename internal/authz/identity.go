// Package authz holds the caller identity value and the declarative
// authorization policy evaluated before any service logic runs.
package authz

import "github.com/jortega-dev/job-board-api/internal/model"

// Identity is the authenticated caller, resolved from the token payload
// and the live user row. It is passed explicitly into every service call
// rather than read from ambient request state.
type Identity struct {
	UserID    uint64
	Email     string
	Name      string
	Role      string
	CompanyID *uint64
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (id Identity) IsAdmin() bool { return id.Role == model.RoleAdmin }

// IsRecruiter reports whether the caller holds the RECRUITER role.
func (id Identity) IsRecruiter() bool { return id.Role == model.RoleRecruiter }
