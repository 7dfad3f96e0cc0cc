// Package queue defines the domain events exchanged over the message
// broker and the background consumer that records them.
package queue

// Queue names used for both publishing and consuming.
const (
	OfferPublishedQueue       = "offer.published"
	ApplicationSubmittedQueue = "application.submitted"
)

// OfferPublishedEvent is emitted when a job offer becomes ACTIVE, either
// at creation or through a status transition. It carries enough context
// for downstream consumers to notify or index without hitting the
// primary database.
type OfferPublishedEvent struct {
	EventID     string `json:"event_id"`
	OfferID     uint64 `json:"offer_id"`
	Title       string `json:"title"`
	CompanyID   uint64 `json:"company_id"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	PublishedAt string `json:"published_at"`
}

// ApplicationSubmittedEvent is emitted when a student applies to an
// offer.
type ApplicationSubmittedEvent struct {
	EventID       string `json:"event_id"`
	ApplicationID uint64 `json:"application_id"`
	OfferID       uint64 `json:"offer_id"`
	OfferTitle    string `json:"offer_title"`
	StudentID     uint64 `json:"student_id"`
	SubmittedAt   string `json:"submitted_at"`
}
