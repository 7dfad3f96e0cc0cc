package model

import "time"

// Company represents a row in the `companies` table. A company owns zero
// or more job offers and may have recruiters attached via users.company_id.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – company name.
//  Industry     – optional industry label.
//  Location     – optional city/country string, filtered case-insensitively.
//  Size         – optional free-form headcount band.
//  ContactEmail – optional unique contact address.
//  WebsiteURL   – optional website link.
//  LogoURL      – optional logo link.
//  Description  – optional long description.
//  IsVerified   – verification flag, set by admins.
type Company struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Industry     *string   `json:"industry"`
	Location     *string   `json:"location"`
	Size         *string   `json:"size"`
	ContactEmail *string   `json:"contact_email"`
	WebsiteURL   *string   `json:"website_url"`
	LogoURL      *string   `json:"logo_url"`
	Description  *string   `json:"description"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerCompanyID implements the authz resource contract: a company is
// owned by itself, so recruiters pass the ownership gate only when their
// company_id equals the company's id.
func (c Company) OwnerCompanyID() (uint64, bool) { return c.ID, true }

// OwnerUserID implements the authz resource contract. Companies have no
// single owning user.
func (c Company) OwnerUserID() (uint64, bool) { return 0, false }

// CompanyWithStats is the list/detail view of a company: the row itself
// plus the number of offers it owns.
type CompanyWithStats struct {
	Company
	JobOffersCount int64 `json:"job_offers_count"`
}

// CompanyDetail is the findOne view: stats plus the recruiters attached
// to the company.
type CompanyDetail struct {
	CompanyWithStats
	Recruiters []PublicUser `json:"recruiters"`
}
