package booking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo, *mockRepo, *recordingNotifier) {
	svc, repo, notifier := newTestService()
	return NewHandler(svc), echo.New(), repo, notifier
}

func TestHandler_ConfirmBooking(t *testing.T) {
	h, e, repo, notifier := newTestHandler()
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Date: "2025-06-01", Time: "09:00", Status: StatusPending})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.ConfirmBooking(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(notifier.created) != 1 {
		t.Errorf("expected a calendar event, got %d", len(notifier.created))
	}
}

func TestHandler_ConfirmBooking_InvalidID(t *testing.T) {
	h, e, _, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.ConfirmBooking(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_GetBooking_NotFound(t *testing.T) {
	h, e, _, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetBooking(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_RescheduleBooking(t *testing.T) {
	h, e, repo, notifier := newTestHandler()
	b := repo.add(&Booking{PractitionerID: "prac-1", PatientID: "pat-1", Date: "2025-06-01", Time: "09:00", Status: StatusConfirmed})

	body := `{"date":"2025-06-02","time":"14:00"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.RescheduleBooking(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(notifier.updated) != 1 {
		t.Errorf("expected an updated event, got %d", len(notifier.updated))
	}
}

func TestHandler_RescheduleBooking_BadDate(t *testing.T) {
	h, e, repo, _ := newTestHandler()
	b := repo.add(&Booking{PractitionerID: "prac-1", Status: StatusConfirmed})

	body := `{"date":"tomorrow","time":"14:00"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	err := h.RescheduleBooking(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ListBookings(t *testing.T) {
	h, e, repo, _ := newTestHandler()
	repo.add(&Booking{PractitionerID: "prac-1", Status: StatusConfirmed})

	req := httptest.NewRequest(http.MethodGet, "/?practitioner_id=prac-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListBookings(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
