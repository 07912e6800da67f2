package appointments

import (
	"DentEase/entity"
	"DentEase/internal/analytics"
	"DentEase/internal/lib/pagination"
	"context"
	"io"
)

type Core interface {
	ListAppointments(ctx context.Context, status string, page int) (*pagination.Page[entity.AppointmentRow], error)
	UpdateAppointmentStatus(ctx context.Context, id, status string) (*entity.Appointment, error)
	AppointmentCalendar(ctx context.Context) ([]analytics.CalendarDay, error)
	UpcomingAppointments(ctx context.Context, filter string) ([]entity.Appointment, error)
	ExportAppointments(ctx context.Context, w io.Writer) error
}
