package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jortega-dev/job-board-api/internal/model"
)

// Publisher emits domain events to RabbitMQ. Publishing is best-effort:
// every failure is logged and swallowed so a broker outage never fails
// the originating request.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given broker URL, or nil
// when no URL is configured. A nil *Publisher is safe to call; events
// are simply dropped.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// OfferPublished emits an OfferPublishedEvent for an offer that just
// went ACTIVE.
func (p *Publisher) OfferPublished(ctx context.Context, offer model.JobOfferRow) {
	if p == nil {
		return
	}
	p.publish(ctx, OfferPublishedQueue, OfferPublishedEvent{
		EventID:     uuid.NewString(),
		OfferID:     offer.ID,
		Title:       offer.Title,
		CompanyID:   offer.CompanyID,
		CompanyName: offer.Company.Name,
		Location:    offer.Location,
		JobType:     offer.JobType,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// ApplicationSubmitted emits an ApplicationSubmittedEvent for a freshly
// filed application.
func (p *Publisher) ApplicationSubmitted(ctx context.Context, app model.JobApplication, offerTitle string) {
	if p == nil {
		return
	}
	p.publish(ctx, ApplicationSubmittedQueue, ApplicationSubmittedEvent{
		EventID:       uuid.NewString(),
		ApplicationID: app.ID,
		OfferID:       app.JobOfferID,
		OfferTitle:    offerTitle,
		StudentID:     app.StudentID,
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

// publish declares the durable queue and sends one persistent JSON
// message on the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, event any) {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
	}
}
