package model

import "time"

// Role values stored in users.role. The policy tables in the authz
// package key their allow-lists on these strings.
const (
	RoleStudent   = "STUDENT"
	RoleRecruiter = "RECRUITER"
	RoleAdmin     = "ADMIN"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleStudent || s == RoleRecruiter || s == RoleAdmin
}

// User represents a row in the `users` table. CompanyID is set only for
// recruiters; a recruiter's authority over a company (and its offers) is
// determined solely by CompanyID equality.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – optional display name.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password. Never serialized.
//  Role         – one of STUDENT, RECRUITER, ADMIN.
//  CompanyID    – owning company for recruiters, nil otherwise.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Name         *string
	Email        string
	PasswordHash string
	Role         string
	CompanyID    *uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the user view returned over the API. The password hash
// never leaves the service boundary.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Name      *string   `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyID *uint64   `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public shapes a stored user into its API view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}
