package model

import "time"

// Application status values stored in job_applications.status.
const (
	AppSubmitted    = "SUBMITTED"
	AppReviewed     = "REVIEWED"
	AppInterviewing = "INTERVIEWING"
	AppOffered      = "OFFERED"
	AppRejected     = "REJECTED"
	AppWithdrawn    = "WITHDRAWN"
)

// JobApplication represents a row in the `job_applications` table. A
// student may apply to a given offer at most once; the pair
// (job_offer_id, student_id) is unique.
type JobApplication struct {
	ID          uint64    `json:"id"`
	JobOfferID  uint64    `json:"job_offer_id"`
	StudentID   uint64    `json:"student_id"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"cover_letter"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationRow is the listing view of an application: the row plus the
// offer title and, for recruiter-facing listings, the applicant view.
type ApplicationRow struct {
	JobApplication
	OfferTitle string      `json:"offer_title"`
	Student    *PublicUser `json:"student,omitempty"`
}
