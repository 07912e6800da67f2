package appointments

import (
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func Export(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := handler.ExportAppointments(r.Context(), &buf); err != nil {
			log.With(sl.Module("http.handlers.appointments"), sl.Err(err)).Error("export appointments")
			response.Fail(w, r, err, "Failed to export appointments")
			return
		}

		name := fmt.Sprintf("appointments-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
