package appointments

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.appointments"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := r.URL.Query().Get("status")
		page, err := handler.ListAppointments(r.Context(), status, request.QueryInt(r, "page", 1))
		if err != nil {
			logger.Error("list appointments", slog.String("status", status), sl.Err(err))
			response.Fail(w, r, err, "Failed to load appointments")
			return
		}
		render.JSON(w, r, response.Ok(page))
	}
}

func Calendar(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := handler.AppointmentCalendar(r.Context())
		if err != nil {
			log.With(sl.Module("http.handlers.appointments"), sl.Err(err)).Error("appointment calendar")
			response.Fail(w, r, err, "Failed to load calendar")
			return
		}
		render.JSON(w, r, response.Ok(days))
	}
}

func Upcoming(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := handler.UpcomingAppointments(r.Context(), r.URL.Query().Get("filter"))
		if err != nil {
			log.With(sl.Module("http.handlers.appointments"), sl.Err(err)).Error("upcoming appointments")
			response.Fail(w, r, err, "Failed to load appointments")
			return
		}
		render.JSON(w, r, response.Ok(items))
	}
}
