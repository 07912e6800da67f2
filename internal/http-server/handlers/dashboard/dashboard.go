package dashboard

import (
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Summary(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.dashboard"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		summary, err := handler.DashboardSummary(r.Context(), r.URL.Query().Get("upcoming"))
		if err != nil {
			logger.Error("dashboard summary", sl.Err(err))
			response.Fail(w, r, err, "Failed to load dashboard")
			return
		}
		render.JSON(w, r, response.Ok(summary))
	}
}

func Analytics(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.dashboard"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		summary, err := handler.Analytics(r.Context(), r.URL.Query().Get("filter"))
		if err != nil {
			logger.Error("analytics", sl.Err(err))
			response.Fail(w, r, err, "Failed to load analytics")
			return
		}
		logger.Debug("analytics computed", slog.String("range", string(summary.Range)), slog.Int("total", summary.Total))
		render.JSON(w, r, response.Ok(summary))
	}
}
