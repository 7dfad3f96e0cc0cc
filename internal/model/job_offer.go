package model

import "time"

// JobOffer status values stored in job_offers.status.
const (
	StatusDraft  = "DRAFT"
	StatusActive = "ACTIVE"
	StatusPaused = "PAUSED"
	StatusClosed = "CLOSED"
)

// ValidStatus reports whether s is a known offer status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusActive || s == StatusPaused || s == StatusClosed
}

// Job type values stored in job_offers.job_type.
const (
	JobFullTime   = "FULL_TIME"
	JobPartTime   = "PART_TIME"
	JobInternship = "INTERNSHIP"
	JobFreelance  = "FREELANCE"
)

// ValidJobType reports whether s is a known job type.
func ValidJobType(s string) bool {
	return s == JobFullTime || s == JobPartTime || s == JobInternship || s == JobFreelance
}

// statusTransitions is the validated lifecycle graph for offer status
// changes. CLOSED is terminal. A write that keeps the current status is
// always allowed and never consults this table.
var statusTransitions = map[string][]string{
	StatusDraft:  {StatusActive, StatusClosed},
	StatusActive: {StatusPaused, StatusClosed},
	StatusPaused: {StatusActive, StatusClosed},
	StatusClosed: {},
}

// CanTransition reports whether an offer may move from one status to
// another. Same-status writes are treated as no-ops and allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// JobOffer represents a row in the `job_offers` table. Every offer is
// owned by exactly one company and exactly one posting user.
type JobOffer struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CompanyID      uint64    `json:"company_id"`
	PostedByID     uint64    `json:"posted_by_id"`
	JobType        string    `json:"job_type"`
	Location       string    `json:"location"`
	IsRemote       bool      `json:"is_remote"`
	SalaryMin      *int64    `json:"salary_min"`
	SalaryMax      *int64    `json:"salary_max"`
	SalaryCurrency *string   `json:"salary_currency"`
	Status         string    `json:"status"`
	IsFeatured     bool      `json:"is_featured"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyRef is the compact company view embedded in offer rows.
type CompanyRef struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	LogoURL  *string `json:"logo_url,omitempty"`
	Location *string `json:"location,omitempty"`
}

// JobOfferRow is the list/detail view of an offer: the row plus its
// company reference and required skills. ApplicationsCount is populated
// only on owner/admin listings.
type JobOfferRow struct {
	JobOffer
	Company           CompanyRef  `json:"company"`
	RequiredSkills    []Skill     `json:"required_skills"`
	PostedBy          *PublicUser `json:"posted_by,omitempty"`
	ApplicationsCount *int64      `json:"applications_count,omitempty"`
}
