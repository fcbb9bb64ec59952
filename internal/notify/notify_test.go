package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mastergurukulam/apiserver/types"
)

type capturePublisher struct {
	channel string
	data    []byte
	attrs   map[string]string
	err     error
}

func (c *capturePublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	c.channel = channel
	c.data = data
	c.attrs = attrs
	return "msg-1", c.err
}

func (c *capturePublisher) Close() error { return nil }

func TestEnquiryReceived(t *testing.T) {
	publisher := &capturePublisher{}
	notifier := New(publisher, nil)

	contact := types.Contact{ID: 9, Name: "A Parent", Email: "parent@example.com", Message: "hi"}
	notifier.EnquiryReceived(context.Background(), contact)

	if publisher.channel != ChannelEnquiries {
		t.Fatalf("unexpected channel: %q", publisher.channel)
	}
	if publisher.attrs["type"] != EventEnquiryReceived {
		t.Fatalf("unexpected type attribute: %q", publisher.attrs["type"])
	}

	var event Event
	if err := json.Unmarshal(publisher.data, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.Type != EventEnquiryReceived {
		t.Fatalf("unexpected event type: %q", event.Type)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be set")
	}
}

func TestPublishFailureDoesNotPanic(t *testing.T) {
	publisher := &capturePublisher{err: errors.New("broker down")}
	notifier := New(publisher, nil)

	// The failure is logged and swallowed.
	notifier.EnquiryReceived(context.Background(), types.Contact{ID: 1})
}

func TestNilNotifierIsNoOp(t *testing.T) {
	var notifier *Notifier

	notifier.EnquiryReceived(context.Background(), types.Contact{ID: 1})
	if err := notifier.Close(); err != nil {
		t.Fatalf("close nil notifier: %v", err)
	}
}
