// Package calendar mirrors booking changes to an external calendar
// service. Delivery is a fire-and-forget side effect of the booking
// workflow: callers log failures but never surface them.
package calendar

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Event carries the fields the external calendar needs to mirror a
// booking: when it is and who attends.
type Event struct {
	BookingID      string   `json:"booking_id"`
	PractitionerID string   `json:"practitioner_id"`
	PatientID      string   `json:"patient_id"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Attendees      []string `json:"attendees"`
}

// Notifier is invoked after a booking is confirmed, rescheduled or
// cancelled.
type Notifier interface {
	EventCreated(ctx context.Context, e Event) error
	EventUpdated(ctx context.Context, e Event) error
	EventCancelled(ctx context.Context, e Event) error
}

// envelope is the wire format POSTed to the calendar endpoint.
type envelope struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Event     Event     `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Kaizen-Signature"

// WebhookNotifier delivers events to a single HTTP endpoint, signing
// each payload with a shared secret.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookNotifier(url, secret string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) EventCreated(ctx context.Context, e Event) error {
	return n.deliver(ctx, "booking.confirmed", e)
}

func (n *WebhookNotifier) EventUpdated(ctx context.Context, e Event) error {
	return n.deliver(ctx, "booking.rescheduled", e)
}

func (n *WebhookNotifier) EventCancelled(ctx context.Context, e Event) error {
	return n.deliver(ctx, "booking.cancelled", e)
}

func (n *WebhookNotifier) deliver(ctx context.Context, eventType string, e Event) error {
	payload, err := json.Marshal(envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		Event:     e,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal calendar event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set(SignatureHeader, Sign(payload, n.secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver calendar event: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("calendar endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 of payload under secret. Receivers
// recompute it to verify the event came from this service.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// NopNotifier is used when no calendar endpoint is configured.
type NopNotifier struct{}

func (NopNotifier) EventCreated(context.Context, Event) error   { return nil }
func (NopNotifier) EventUpdated(context.Context, Event) error   { return nil }
func (NopNotifier) EventCancelled(context.Context, Event) error { return nil }
