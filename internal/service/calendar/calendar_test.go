package calendar

import (
	"DentEase/entity"
	"testing"
	"time"
)

func TestBuildEventWithTimeSlot(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)
	a := &entity.Appointment{
		UserName:        "Ana Cruz",
		Doctor:          "Dr. Fano",
		Services:        []string{"Cleaning", "Whitening"},
		AppointmentDate: time.Date(2026, 3, 18, 0, 0, 0, 0, loc),
		Time:            "2:30 pm",
	}
	ev := BuildEvent(a, loc)

	if ev.Summary != "Dental appointment: Ana Cruz" {
		t.Fatalf("unexpected summary %q", ev.Summary)
	}
	if ev.Start.DateTime != "2026-03-18T14:30:00+08:00" || ev.End.DateTime != "2026-03-18T15:30:00+08:00" {
		t.Fatalf("unexpected window %s - %s", ev.Start.DateTime, ev.End.DateTime)
	}
	if ev.Description != "Services: Cleaning, Whitening\nDoctor: Dr. Fano" {
		t.Fatalf("unexpected description %q", ev.Description)
	}
}

func TestBuildEventAllDayFallback(t *testing.T) {
	a := &entity.Appointment{
		UserName:        "Ben",
		AppointmentDate: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		Time:            "morning",
	}
	ev := BuildEvent(a, time.UTC)
	if ev.Start.Date != "2026-03-18" || ev.End.Date != "2026-03-19" || ev.Start.DateTime != "" {
		t.Fatalf("expected all-day event, got %+v / %+v", ev.Start, ev.End)
	}
}

func TestParseSlot24h(t *testing.T) {
	slot, ok := parseSlot("09:15")
	if !ok || slot.Hour() != 9 || slot.Minute() != 15 {
		t.Fatalf("unexpected slot %v %v", slot, ok)
	}
}
