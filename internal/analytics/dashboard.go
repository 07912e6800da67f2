package analytics

import (
	"DentEase/entity"
	"sort"
	"time"
)

// Counts are the headline numbers of the dashboard page.
type Counts struct {
	TodayApproved int `json:"todayApproved"`
	Declined      int `json:"declined"`
	Pending       int `json:"pending"`
	Patients      int `json:"patients"`
	Unread        int `json:"unread"`
}

// CountAppointments fills the appointment part of Counts.
func CountAppointments(appointments []entity.Appointment, now time.Time) Counts {
	var c Counts
	for i := range appointments {
		a := &appointments[i]
		switch a.Status {
		case entity.StatusApproved:
			if Today.Contains(a.AppointmentDate, now) {
				c.TodayApproved++
			}
		case entity.StatusDeclined:
			c.Declined++
		case entity.StatusPending:
			c.Pending++
		}
	}
	return c
}

// Upcoming lists approved appointments in range, soonest first. Only Today,
// This Week and All are meaningful here; other ranges behave as All.
func Upcoming(appointments []entity.Appointment, r Range, now time.Time) []entity.Appointment {
	if r != Today && r != ThisWeek {
		r = All
	}
	out := make([]entity.Appointment, 0)
	for _, a := range appointments {
		if a.Status != entity.StatusApproved || a.AppointmentDate.IsZero() {
			continue
		}
		if r.Contains(a.AppointmentDate, now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppointmentDate.Before(out[j].AppointmentDate)
	})
	return out
}

// CalendarDay holds the approved appointments of one date.
type CalendarDay struct {
	Date         string               `json:"date"`
	Appointments []entity.Appointment `json:"appointments"`
}

// Calendar groups approved appointments by date, earliest date first.
func Calendar(appointments []entity.Appointment) []CalendarDay {
	index := make(map[string]int)
	days := make([]CalendarDay, 0)
	for _, a := range appointments {
		if a.Status != entity.StatusApproved || a.AppointmentDate.IsZero() {
			continue
		}
		key := a.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, CalendarDay{Date: key})
		}
		days[i].Appointments = append(days[i].Appointments, a)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	for i := range days {
		appts := days[i].Appointments
		sort.SliceStable(appts, func(a, b int) bool {
			return appts[a].AppointmentDate.Before(appts[b].AppointmentDate)
		})
	}
	return days
}
