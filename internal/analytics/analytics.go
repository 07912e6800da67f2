package analytics

import (
	"DentEase/entity"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	TopServicesLimit = 5
	notAvailable     = "N/A"
)

type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

type MonthCount struct {
	Month        string `json:"month"`
	Appointments int    `json:"appointments"`
}

type ServiceCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Summary struct {
	Range           Range          `json:"range"`
	Months          []MonthCount   `json:"months"`
	Total           int            `json:"total"`
	Average         float64        `json:"average"`
	Peak            MonthCount     `json:"peak"`
	Trend           Trend          `json:"trend"`
	TopServices     []ServiceCount `json:"topServices"`
	TopService      ServiceCount   `json:"topService"`
	TopServiceShare float64        `json:"topServiceShare"`
	Insight         string         `json:"insight"`
}

// MonthlyCounts counts appointments in range per "Jan 2006" month, oldest
// month first. With nothing in range a single N/A row is returned.
func MonthlyCounts(appointments []entity.Appointment, r Range, now time.Time) []MonthCount {
	type bucket struct {
		start time.Time
		count int
	}
	buckets := make(map[string]*bucket)
	for i := range appointments {
		date := appointments[i].AppointmentDate
		if !r.Contains(date, now) {
			continue
		}
		date = date.In(now.Location())
		label := date.Format("Jan 2006")
		if b, ok := buckets[label]; ok {
			b.count++
			continue
		}
		buckets[label] = &bucket{start: time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, now.Location()), count: 1}
	}
	if len(buckets) == 0 {
		return []MonthCount{{Month: notAvailable}}
	}

	months := make([]MonthCount, 0, len(buckets))
	for label, b := range buckets {
		months = append(months, MonthCount{Month: label, Appointments: b.count})
	}
	sort.Slice(months, func(i, j int) bool {
		return buckets[months[i].Month].start.Before(buckets[months[j].Month].start)
	})
	return months
}

// TopServices counts bookings per service over all appointments, most booked
// first, at most n entries.
func TopServices(appointments []entity.Appointment, n int) []ServiceCount {
	counts := make(map[string]int)
	for i := range appointments {
		for _, s := range appointments[i].Services {
			if s = strings.TrimSpace(s); s != "" {
				counts[s]++
			}
		}
	}
	out := make([]ServiceCount, 0, len(counts))
	for name, v := range counts {
		out = append(out, ServiceCount{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func Summarize(appointments []entity.Appointment, r Range, now time.Time) Summary {
	months := MonthlyCounts(appointments, r, now)
	s := Summary{
		Range:       r,
		Months:      months,
		Peak:        MonthCount{Month: notAvailable},
		Trend:       Stable,
		TopServices: TopServices(appointments, TopServicesLimit),
		TopService:  ServiceCount{Name: notAvailable},
	}

	for _, m := range months {
		s.Total += m.Appointments
		if m.Appointments > s.Peak.Appointments {
			s.Peak = m
		}
	}
	s.Average = round1(float64(s.Total) / float64(len(months)))

	if n := len(months); n >= 2 {
		last, prev := months[n-1].Appointments, months[n-2].Appointments
		switch {
		case last > prev:
			s.Trend = Increasing
		case last < prev:
			s.Trend = Decreasing
		}
	}

	booked := 0
	for _, svc := range s.TopServices {
		booked += svc.Value
	}
	if len(s.TopServices) > 0 {
		s.TopService = s.TopServices[0]
	}
	if booked > 0 {
		s.TopServiceShare = round1(float64(s.TopService.Value) / float64(booked) * 100)
	}
	if s.TopServiceShare > 50 {
		s.Insight = fmt.Sprintf("%s dominates with %.1f%% of bookings", s.TopService.Name, s.TopServiceShare)
	} else {
		s.Insight = "Services are well-distributed across different types"
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
