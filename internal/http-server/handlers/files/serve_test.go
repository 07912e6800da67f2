package files

import (
	"DentEase/entity"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubCore struct{}

func (stubCore) OpenFile(_ context.Context, fileID, expires, sig string) (string, entity.FileMetadata, io.ReadCloser, error) {
	if sig != "ok" {
		return "", entity.FileMetadata{}, nil, entity.ErrInvalidSignature
	}
	if fileID != "f1" {
		return "", entity.FileMetadata{}, nil, entity.ErrNotFound
	}
	return "smile.png", entity.FileMetadata{MIMEType: "image/png"}, io.NopCloser(strings.NewReader("png")), nil
}

func TestServe(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Get("/files/{file_id}", Serve(log, stubCore{}))

	tests := []struct {
		path string
		code int
	}{
		{path: "/files/f1?expires=1&sig=ok", code: http.StatusOK},
		{path: "/files/f1?expires=1&sig=bad", code: http.StatusForbidden},
		{path: "/files/f2?expires=1&sig=ok", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.code {
			t.Fatalf("%s: expected %d, got %d", tt.path, tt.code, rec.Code)
		}
		if tt.code == http.StatusOK {
			if rec.Header().Get("Content-Type") != "image/png" || rec.Body.String() != "png" {
				t.Fatalf("unexpected file response %q %q", rec.Header().Get("Content-Type"), rec.Body.String())
			}
		}
	}
}
