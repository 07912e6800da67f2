package patients

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.patients"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()
		page, err := handler.ListPatients(r.Context(), query.Get("q"), query.Get("filter"), request.QueryInt(r, "page", 1))
		if err != nil {
			logger.Error("list patients", sl.Err(err))
			response.Fail(w, r, err, "Failed to load patients")
			return
		}
		render.JSON(w, r, response.Ok(page))
	}
}

func Export(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := handler.ExportPatients(r.Context(), &buf); err != nil {
			log.With(sl.Module("http.handlers.patients"), sl.Err(err)).Error("export patients")
			response.Fail(w, r, err, "Failed to export patients")
			return
		}

		name := fmt.Sprintf("patients-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
