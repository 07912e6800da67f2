package calendar

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const appointmentLength = time.Hour

var timeLayouts = []string{"3:04 PM", "3:04PM", "03:04 PM", "15:04"}

// Service books approved appointments into a Google Calendar.
type Service struct {
	events     *gcal.Service
	calendarID string
	loc        *time.Location
	log        *slog.Logger
}

func New(ctx context.Context, credentialsFile, calendarID, timeZone string, log *slog.Logger) (*Service, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	events, err := gcal.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("calendar client: %w", err)
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", timeZone, err)
	}
	return &Service{
		events:     events,
		calendarID: calendarID,
		loc:        loc,
		log:        log.With(sl.Module("calendar")),
	}, nil
}

// AddAppointment creates the calendar event and returns its id.
func (s *Service) AddAppointment(ctx context.Context, a *entity.Appointment) (string, error) {
	event, err := s.events.Events.Insert(s.calendarID, BuildEvent(a, s.loc)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	s.log.Debug("calendar event created", slog.String("appointment", a.ID), slog.String("event", event.Id))
	return event.Id, nil
}

// BuildEvent maps an appointment to a one hour event starting at its time
// slot. Without a parsable slot the event spans the whole day.
func BuildEvent(a *entity.Appointment, loc *time.Location) *gcal.Event {
	event := &gcal.Event{
		Summary:     fmt.Sprintf("Dental appointment: %s", a.UserName),
		Description: describe(a),
	}
	date := a.AppointmentDate.In(loc)
	y, m, d := date.Date()

	if slot, ok := parseSlot(a.Time); ok {
		start := time.Date(y, m, d, slot.Hour(), slot.Minute(), 0, 0, loc)
		event.Start = &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()}
		event.End = &gcal.EventDateTime{DateTime: start.Add(appointmentLength).Format(time.RFC3339), TimeZone: loc.String()}
		return event
	}

	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	event.Start = &gcal.EventDateTime{Date: day.Format(time.DateOnly)}
	event.End = &gcal.EventDateTime{Date: day.AddDate(0, 0, 1).Format(time.DateOnly)}
	return event
}

func parseSlot(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func describe(a *entity.Appointment) string {
	var b strings.Builder
	if len(a.Services) > 0 {
		fmt.Fprintf(&b, "Services: %s\n", strings.Join(a.Services, ", "))
	}
	if a.Doctor != "" {
		fmt.Fprintf(&b, "Doctor: %s\n", a.Doctor)
	}
	if a.UserEmail != "" {
		fmt.Fprintf(&b, "Patient email: %s\n", a.UserEmail)
	}
	return strings.TrimSpace(b.String())
}
