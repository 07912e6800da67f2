package appointments

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.appointments"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("appointment", id),
		)

		var req StatusRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		appointment, err := handler.UpdateAppointmentStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Warn("update appointment status", slog.String("status", req.Status), sl.Err(err))
			response.Fail(w, r, err, "Failed to update appointment")
			return
		}

		logger.Info("appointment status updated", slog.String("status", string(appointment.Status)))
		render.JSON(w, r, response.Ok(appointment))
	}
}
