package core

import (
	"DentEase/entity"
	"DentEase/internal/lib/pagination"
	"DentEase/internal/lib/phone"
	"DentEase/internal/lib/sheet"
	"context"
	"io"
	"sort"
	"strings"
	"time"
)

const noAppointment = "No appointments"

// ListPatients joins patients with their latest appointment, searches over
// name, phone, address, email and last appointment, and filters by whether
// the patient has any appointment ("with", "none" or all).
func (c *Core) ListPatients(ctx context.Context, q, filter string, page int) (*pagination.Page[entity.PatientRow], error) {
	rows, err := c.patientRows(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	filter = strings.ToLower(strings.TrimSpace(filter))

	filtered := make([]entity.PatientRow, 0, len(rows))
	for _, r := range rows {
		switch {
		case filter == "with" && !r.HasAppointment():
			continue
		case filter == "none" && r.HasAppointment():
			continue
		case q != "" && !matchPatient(&r, q):
			continue
		}
		filtered = append(filtered, r)
	}
	p := pagination.Paginate(filtered, page, pagination.PageSize)
	return &p, nil
}

func matchPatient(r *entity.PatientRow, q string) bool {
	for _, field := range []string{r.UserName, r.PhoneNumber, r.Address, r.Email, r.LastAppointment} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (c *Core) patientRows(ctx context.Context) ([]entity.PatientRow, error) {
	patients, err := c.repo.AllPatients(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return joinPatients(patients, appointments), nil
}

// joinPatients attaches the most recent appointment date to every patient.
// Appointments match by user id, then by email, then by name, ignoring case.
func joinPatients(patients []entity.Patient, appointments []entity.Appointment) []entity.PatientRow {
	byUser := make(map[string]time.Time)
	byEmail := make(map[string]time.Time)
	byName := make(map[string]time.Time)
	latest := func(m map[string]time.Time, key string, t time.Time) {
		if key == "" {
			return
		}
		if cur, ok := m[key]; !ok || t.After(cur) {
			m[key] = t
		}
	}
	for _, a := range appointments {
		if a.AppointmentDate.IsZero() {
			continue
		}
		latest(byUser, a.UserID, a.AppointmentDate)
		latest(byEmail, strings.ToLower(strings.TrimSpace(a.UserEmail)), a.AppointmentDate)
		latest(byName, strings.ToLower(strings.TrimSpace(a.UserName)), a.AppointmentDate)
	}

	rows := make([]entity.PatientRow, 0, len(patients))
	for _, p := range patients {
		row := entity.PatientRow{
			ID:              p.ID,
			UserName:        p.DisplayName(),
			PhoneNumber:     phone.Normalize(p.PhoneNumber),
			Address:         p.Address,
			Email:           p.Email,
			LastAppointment: noAppointment,
		}
		date, ok := byUser[p.ID]
		if !ok {
			date, ok = byEmail[strings.ToLower(strings.TrimSpace(p.Email))]
		}
		if !ok {
			date, ok = byName[strings.ToLower(strings.TrimSpace(p.Name))]
		}
		if ok {
			d := date
			row.LastAppointmentDate = &d
			row.LastAppointment = d.Format("Jan 2, 2006")
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].LastAppointmentDate, rows[j].LastAppointmentDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return strings.ToLower(rows[i].UserName) < strings.ToLower(rows[j].UserName)
	})
	return rows
}

func (c *Core) ExportPatients(ctx context.Context, w io.Writer) error {
	rows, err := c.patientRows(ctx)
	if err != nil {
		return err
	}
	table := sheet.Table{
		Name:   "Patients",
		Header: []string{"Name", "Phone", "Address", "Email", "Last appointment"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []interface{}{r.UserName, r.PhoneNumber, r.Address, r.Email, r.LastAppointment})
	}
	return sheet.Write(w, table)
}
