package appointments

import (
	"DentEase/entity"
	"DentEase/internal/analytics"
	"DentEase/internal/lib/pagination"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubCore struct {
	status entity.AppointmentStatus
	page   int
}

func (s *stubCore) ListAppointments(_ context.Context, _ string, page int) (*pagination.Page[entity.AppointmentRow], error) {
	s.page = page
	p := pagination.Paginate([]entity.AppointmentRow{}, page, pagination.PageSize)
	return &p, nil
}

func (s *stubCore) UpdateAppointmentStatus(_ context.Context, id, status string) (*entity.Appointment, error) {
	next, err := entity.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}
	if id != "a1" {
		return nil, entity.ErrNotFound
	}
	if !s.status.CanTransitionTo(next) {
		return nil, entity.ErrInvalidStateTransition
	}
	s.status = next
	return &entity.Appointment{ID: id, Status: next}, nil
}

func (s *stubCore) AppointmentCalendar(context.Context) ([]analytics.CalendarDay, error) {
	return nil, nil
}

func (s *stubCore) UpcomingAppointments(context.Context, string) ([]entity.Appointment, error) {
	return nil, nil
}

func (s *stubCore) ExportAppointments(_ context.Context, w io.Writer) error {
	_, err := w.Write([]byte("xlsx"))
	return err
}

func router(stub *stubCore) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Get("/appointments", List(log, stub))
	r.Get("/appointments/export", Export(log, stub))
	r.Post("/appointments/{id}/status", UpdateStatus(log, stub))
	return r
}

func TestUpdateStatusCodes(t *testing.T) {
	stub := &stubCore{status: entity.StatusDeclined}
	h := router(stub)

	tests := []struct {
		name string
		id   string
		body string
		code int
	}{
		{name: "declined to approved", id: "a1", body: `{"status":"approved"}`, code: http.StatusConflict},
		{name: "unknown status", id: "a1", body: `{"status":"cancelled"}`, code: http.StatusBadRequest},
		{name: "missing status", id: "a1", body: `{}`, code: http.StatusBadRequest},
		{name: "unknown appointment", id: "zz", body: `{"status":"approved"}`, code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/appointments/"+tt.id+"/status", strings.NewReader(tt.body))
			h.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateStatusApproves(t *testing.T) {
	stub := &stubCore{status: entity.StatusPending}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/appointments/a1/status", strings.NewReader(`{"status":"approved"}`))
	router(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.status != entity.StatusApproved {
		t.Fatalf("expected approved, got %s", stub.status)
	}
}

func TestListPageParam(t *testing.T) {
	stub := &stubCore{}
	h := router(stub)

	for query, want := range map[string]int{"?page=3": 3, "?page=abc": 1, "": 1} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments"+query, nil))
		if rec.Code != http.StatusOK || stub.page != want {
			t.Fatalf("%q: expected page %d, got %d (code %d)", query, want, stub.page, rec.Code)
		}
	}
}

func TestExportHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	router(&stubCore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/export", nil))

	if rec.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "appointments-") {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if rec.Body.String() != "xlsx" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
