// Package notify publishes site events to an external broker so that a
// separate worker can act on them, for example emailing staff about a
// new enquiry. Delivery itself is not this service's job.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

const (
	// ChannelEnquiries carries contact-form submissions.
	ChannelEnquiries = "site.enquiries"

	EventEnquiryReceived = "enquiry.received"
)

// Publisher delivers raw messages to a broker channel. Implementations
// exist for RabbitMQ and Google Pub/Sub.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Event is the envelope written to the broker.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Notifier serializes domain events and publishes them best-effort:
// publish failures are logged and never propagate to the request that
// triggered them. A nil Notifier is a no-op, so callers need no
// configuration checks.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

func New(publisher Publisher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{publisher: publisher, logger: logger}
}

// EnquiryReceived announces a new contact enquiry.
func (n *Notifier) EnquiryReceived(ctx context.Context, contact types.Contact) {
	n.publish(ctx, ChannelEnquiries, Event{
		Type:       EventEnquiryReceived,
		OccurredAt: time.Now(),
		Payload:    contact,
	})
}

// Close releases the underlying broker connection.
func (n *Notifier) Close() error {
	if n == nil || n.publisher == nil {
		return nil
	}
	return n.publisher.Close()
}

func (n *Notifier) publish(ctx context.Context, channel string, event Event) {
	if n == nil || n.publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal event", "type", event.Type, "err", err)
		return
	}

	attrs := map[string]string{"type": event.Type}
	if _, err := n.publisher.Publish(ctx, channel, data, attrs); err != nil {
		n.logger.Error("publish event", "channel", channel, "type", event.Type, "err", err)
	}
}
