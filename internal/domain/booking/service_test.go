package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaizenmindbody/kaizen-sub003/internal/platform/calendar"
)

type mockRepo struct {
	bookings map[uuid.UUID]*Booking
	err      error
}

func newMockRepo() *mockRepo {
	return &mockRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (m *mockRepo) add(b *Booking) *Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.bookings[b.ID] = b
	return b
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	return b, nil
}

func (m *mockRepo) SetStatus(_ context.Context, id uuid.UUID, status string) (*Booking, error) {
	b, err := m.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (m *mockRepo) Reschedule(_ context.Context, id uuid.UUID, date, time string) (*Booking, error) {
	b, err := m.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	b.Date = date
	b.Time = time
	return b, nil
}

func (m *mockRepo) ListByPractitioner(_ context.Context, practitionerID string, limit, offset int) ([]*Booking, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*Booking
	for _, b := range m.bookings {
		if b.PractitionerID == practitionerID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

type recordingNotifier struct {
	created   []calendar.Event
	updated   []calendar.Event
	cancelled []calendar.Event
	err       error
}

func (n *recordingNotifier) EventCreated(_ context.Context, e calendar.Event) error {
	n.created = append(n.created, e)
	return n.err
}

func (n *recordingNotifier) EventUpdated(_ context.Context, e calendar.Event) error {
	n.updated = append(n.updated, e)
	return n.err
}

func (n *recordingNotifier) EventCancelled(_ context.Context, e calendar.Event) error {
	n.cancelled = append(n.cancelled, e)
	return n.err
}

func newTestService() (*Service, *mockRepo, *recordingNotifier) {
	repo := newMockRepo()
	notifier := &recordingNotifier{}
	return NewService(repo, notifier, zerolog.Nop()), repo, notifier
}

func TestConfirm(t *testing.T) {
	svc, repo, notifier := newTestService()
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Date: "2025-06-01", Time: "09:00", Status: StatusPending})

	got, err := svc.Confirm(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", got.Status)
	}
	if len(notifier.created) != 1 {
		t.Fatalf("expected 1 created event, got %d", len(notifier.created))
	}
	ev := notifier.created[0]
	if ev.BookingID != b.ID.String() || ev.Date != "2025-06-01" || ev.Time != "09:00" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if len(ev.Attendees) != 2 || ev.Attendees[0] != "prac-1" || ev.Attendees[1] != "pat-1" {
		t.Errorf("unexpected attendees: %v", ev.Attendees)
	}
}

func TestConfirm_NotFound(t *testing.T) {
	svc, _, notifier := newTestService()
	_, err := svc.Confirm(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown booking")
	}
	if len(notifier.created) != 0 {
		t.Error("failed status change must not reach the calendar")
	}
}

func TestCancel(t *testing.T) {
	svc, repo, notifier := newTestService()
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Status: StatusConfirmed})

	got, err := svc.Cancel(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("expected status cancelled, got %s", got.Status)
	}
	if len(notifier.cancelled) != 1 {
		t.Errorf("expected 1 cancelled event, got %d", len(notifier.cancelled))
	}
}

func TestReschedule(t *testing.T) {
	svc, repo, notifier := newTestService()
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Date: "2025-06-01", Time: "09:00", Status: StatusConfirmed})

	got, err := svc.Reschedule(context.Background(), b.ID, "2025-06-02", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date != "2025-06-02" || got.Time != "14:00" {
		t.Errorf("unexpected booking: %+v", got)
	}
	if len(notifier.updated) != 1 {
		t.Fatalf("expected 1 updated event, got %d", len(notifier.updated))
	}
	if notifier.updated[0].Date != "2025-06-02" {
		t.Errorf("event must carry the new date, got %s", notifier.updated[0].Date)
	}
}

func TestReschedule_Validation(t *testing.T) {
	svc, repo, _ := newTestService()
	b := repo.add(&Booking{PractitionerID: "prac-1", Status: StatusConfirmed})

	if _, err := svc.Reschedule(context.Background(), b.ID, "June 2nd", "14:00"); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := svc.Reschedule(context.Background(), b.ID, "2025-06-02", ""); err == nil {
		t.Error("expected error for missing time")
	}
}

// A failing calendar delivery must not fail the booking operation.
func TestNotifierFailureSwallowed(t *testing.T) {
	svc, repo, notifier := newTestService()
	notifier.err = errors.New("webhook unreachable")
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Status: StatusPending})

	got, err := svc.Confirm(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("expected success despite notifier failure, got: %v", err)
	}
	if got.Status != StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", got.Status)
	}
}

func TestListByPractitioner(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&Booking{PractitionerID: "prac-1", Status: StatusConfirmed})
	repo.add(&Booking{PractitionerID: "prac-2", Status: StatusConfirmed})

	items, total, err := svc.ListByPractitioner(context.Background(), "prac-1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 booking, got %d", total)
	}

	if _, _, err := svc.ListByPractitioner(context.Background(), "", 20, 0); err == nil {
		t.Error("expected error for missing practitioner_id")
	}
}
