package core

import (
	"DentEase/entity"
	"DentEase/internal/analytics"
	"DentEase/internal/lib/pagination"
	"DentEase/internal/lib/sheet"
	"DentEase/internal/lib/sl"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

func (c *Core) ListAppointments(ctx context.Context, status string, page int) (*pagination.Page[entity.AppointmentRow], error) {
	var want entity.AppointmentStatus
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, "all") {
		parsed, err := entity.ParseAppointmentStatus(strings.ToLower(s))
		if err != nil {
			return nil, err
		}
		want = parsed
	}

	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]entity.AppointmentRow, 0, len(appointments))
	for _, a := range appointments {
		if want != "" && a.Status != want {
			continue
		}
		rows = append(rows, entity.AppointmentRow{Appointment: a, Actions: a.Status.OperatorActions()})
	}
	p := pagination.Paginate(rows, page, pagination.PageSize)
	return &p, nil
}

// UpdateAppointmentStatus applies an operator action. Approving books the
// appointment in the clinic calendar when one is configured.
func (c *Core) UpdateAppointmentStatus(ctx context.Context, id, status string) (*entity.Appointment, error) {
	next, err := entity.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}
	appt, err := c.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(appt.Status.OperatorActions(), next) {
		return nil, fmt.Errorf("%w: %s to %s", entity.ErrInvalidStateTransition, appt.Status, next)
	}
	if err = c.repo.UpdateAppointmentStatus(ctx, appt.ID, appt.Status, next); err != nil {
		return nil, err
	}

	log := c.log.With(slog.String("appointment", appt.ID))
	log.Info("appointment status changed", slog.String("from", string(appt.Status)), slog.String("to", string(next)))
	appt.Status = next

	if next == entity.StatusApproved && c.calendar != nil {
		if _, err = c.calendar.AddAppointment(ctx, appt); err != nil {
			log.With(sl.Err(err)).Error("add calendar event")
		}
	}
	return appt, nil
}

func (c *Core) AppointmentCalendar(ctx context.Context) ([]analytics.CalendarDay, error) {
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Calendar(appointments), nil
}

func (c *Core) UpcomingAppointments(ctx context.Context, filter string) ([]entity.Appointment, error) {
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Upcoming(appointments, analytics.ParseRange(filter), c.now()), nil
}

func (c *Core) ExportAppointments(ctx context.Context, w io.Writer) error {
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return err
	}
	table := sheet.Table{
		Name:   "Appointments",
		Header: []string{"Patient", "Email", "Doctor", "Services", "Date", "Time", "Status"},
	}
	for _, a := range appointments {
		date := ""
		if !a.AppointmentDate.IsZero() {
			date = a.AppointmentDate.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []interface{}{
			a.UserName, a.UserEmail, a.Doctor, strings.Join(a.Services, ", "), date, a.Time, string(a.Status),
		})
	}
	return sheet.Write(w, table)
}
