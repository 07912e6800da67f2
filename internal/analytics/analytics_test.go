package analytics

import (
	"DentEase/entity"
	"testing"
	"time"
)

// Wednesday
var now = time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)

func appt(id string, date time.Time, status entity.AppointmentStatus, services ...string) entity.Appointment {
	return entity.Appointment{ID: id, AppointmentDate: date, Status: status, Services: services}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		date  time.Time
		match bool
	}{
		{"today", Today, day(2026, 3, 18), true},
		{"yesterday is not today", Today, day(2026, 3, 17), false},
		{"week starts on sunday", ThisWeek, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"saturday closes the week", ThisWeek, time.Date(2026, 3, 21, 23, 59, 0, 0, time.UTC), true},
		{"previous saturday", ThisWeek, day(2026, 3, 14), false},
		{"next sunday", ThisWeek, time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), false},
		{"this month", ThisMonth, day(2026, 3, 1), true},
		{"last month", ThisMonth, day(2026, 2, 28), false},
		{"this year", ThisYear, day(2026, 12, 31), true},
		{"last year", ThisYear, day(2025, 12, 31), false},
		{"all", All, day(2001, 1, 1), true},
		{"zero date never matches", All, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.date, now); got != tt.match {
				t.Fatalf("Contains(%s) = %v, want %v", tt.date, got, tt.match)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	if ParseRange("this week") != ThisWeek {
		t.Fatal("expected case-insensitive match")
	}
	if ParseRange("") != All || ParseRange("decade") != All {
		t.Fatal("unknown ranges fall back to All")
	}
}

func TestMonthlyCountsChronological(t *testing.T) {
	appts := []entity.Appointment{
		appt("1", day(2026, 3, 2), entity.StatusApproved),
		appt("2", day(2025, 12, 5), entity.StatusPending),
		appt("3", day(2026, 1, 9), entity.StatusDeclined),
		appt("4", day(2026, 3, 10), entity.StatusFinished),
		appt("5", time.Time{}, entity.StatusPending),
	}
	got := MonthlyCounts(appts, All, now)
	want := []MonthCount{{"Dec 2025", 1}, {"Jan 2026", 1}, {"Mar 2026", 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMonthlyCountsEmptyRange(t *testing.T) {
	got := MonthlyCounts([]entity.Appointment{appt("1", day(2020, 1, 1), entity.StatusApproved)}, Today, now)
	if len(got) != 1 || got[0].Month != "N/A" || got[0].Appointments != 0 {
		t.Fatalf("expected N/A fallback, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	appts := []entity.Appointment{
		appt("1", day(2026, 1, 3), entity.StatusFinished, "Cleaning"),
		appt("2", day(2026, 1, 4), entity.StatusFinished, "Cleaning", "Whitening"),
		appt("3", day(2026, 1, 5), entity.StatusFinished, "Cleaning"),
		appt("4", day(2026, 2, 3), entity.StatusApproved, "Braces"),
		appt("5", day(2026, 3, 3), entity.StatusApproved, "Cleaning"),
		appt("6", day(2026, 3, 4), entity.StatusPending, "Cleaning"),
	}
	s := Summarize(appts, ThisYear, now)

	if s.Total != 6 {
		t.Fatalf("expected total 6, got %d", s.Total)
	}
	if s.Average != 2 {
		t.Fatalf("expected average 2, got %v", s.Average)
	}
	if s.Peak.Month != "Jan 2026" || s.Peak.Appointments != 3 {
		t.Fatalf("unexpected peak %v", s.Peak)
	}
	if s.Trend != Increasing {
		t.Fatalf("expected increasing trend, got %s", s.Trend)
	}
	if s.TopService.Name != "Cleaning" || s.TopService.Value != 5 {
		t.Fatalf("unexpected top service %v", s.TopService)
	}
	if s.TopServiceShare != 71.4 {
		t.Fatalf("expected share 71.4, got %v", s.TopServiceShare)
	}
	if s.Insight != "Cleaning dominates with 71.4% of bookings" {
		t.Fatalf("unexpected insight %q", s.Insight)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, All, now)
	if s.Peak.Month != "N/A" || s.Trend != Stable || s.TopService.Name != "N/A" || s.Total != 0 {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}

func TestTopServicesLimit(t *testing.T) {
	var appts []entity.Appointment
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "F"} {
		appts = append(appts, appt(string(rune('a'+i)), now, entity.StatusPending, name))
	}
	got := TopServices(appts, TopServicesLimit)
	if len(got) != 5 || got[0].Name != "F" || got[1].Name != "A" {
		t.Fatalf("unexpected top services %v", got)
	}
}

func TestCountsAndUpcoming(t *testing.T) {
	appts := []entity.Appointment{
		appt("today", day(2026, 3, 18), entity.StatusApproved),
		appt("later", day(2026, 3, 20), entity.StatusApproved),
		appt("next-month", day(2026, 4, 2), entity.StatusApproved),
		appt("pending", day(2026, 3, 18), entity.StatusPending),
		appt("declined", day(2026, 3, 19), entity.StatusDeclined),
	}
	c := CountAppointments(appts, now)
	if c.TodayApproved != 1 || c.Pending != 1 || c.Declined != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}

	week := Upcoming(appts, ThisWeek, now)
	if len(week) != 2 || week[0].ID != "today" || week[1].ID != "later" {
		t.Fatalf("unexpected weekly upcoming %v", week)
	}
	if all := Upcoming(appts, All, now); len(all) != 3 || all[2].ID != "next-month" {
		t.Fatalf("unexpected upcoming %v", all)
	}
}

func TestCalendarGroupsApprovedByDate(t *testing.T) {
	appts := []entity.Appointment{
		appt("b", day(2026, 3, 20), entity.StatusApproved),
		appt("a", day(2026, 3, 18), entity.StatusApproved),
		appt("c", day(2026, 3, 20).Add(-time.Hour), entity.StatusApproved),
		appt("x", day(2026, 3, 18), entity.StatusPending),
	}
	days := Calendar(appts)
	if len(days) != 2 || days[0].Date != "2026-03-18" || days[1].Date != "2026-03-20" {
		t.Fatalf("unexpected days %v", days)
	}
	if got := days[1].Appointments; len(got) != 2 || got[0].ID != "c" {
		t.Fatalf("expected c before b, got %v", got)
	}
}
