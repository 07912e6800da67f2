package files

import (
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Serve streams a stored image for a signed URL. No session is required.
func Serve(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "file_id")
		query := r.URL.Query()

		_, meta, body, err := handler.OpenFile(r.Context(), fileID, query.Get("expires"), query.Get("sig"))
		if err != nil {
			log.With(sl.Module("http.handlers.files"), slog.String("file", fileID), sl.Err(err)).Debug("open file")
			response.Fail(w, r, err, "Failed to load file")
			return
		}
		defer body.Close()

		contentType := meta.MIMEType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.WriteHeader(http.StatusOK)
		if _, err = io.Copy(w, body); err != nil {
			log.With(sl.Module("http.handlers.files"), slog.String("file", fileID), sl.Err(err)).Warn("stream file")
		}
	}
}
