package services

import (
	"DentEase/entity"
	"DentEase/impl/core"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	imageField = "image"
	// multipart framing on top of the image itself
	formOverhead = 1 << 20
)

func UploadImage(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.services"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("id", id),
		)

		const limit = entity.MaxImageSize + formOverhead
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || r.ContentLength > limit {
				response.Fail(w, r, entity.FileTooLargeError(imageField, r.ContentLength), "")
				return
			}
			response.BadRequest(w, r, "Invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(imageField)
		if err != nil {
			response.BadRequest(w, r, "Image file is required")
			return
		}
		defer file.Close()

		svc, err := handler.SetServiceImage(r.Context(), id, core.Upload{
			Filename: header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Reader:   file,
		})
		if err != nil {
			logger.Warn("upload service image", slog.String("file", header.Filename), sl.Err(err))
			response.Fail(w, r, err, "Failed to upload image")
			return
		}

		logger.Info("service image uploaded", slog.String("file", header.Filename), slog.Int64("size", header.Size))
		render.JSON(w, r, response.Ok(svc))
	}
}

func DeleteImage(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		svc, err := handler.DeleteServiceImage(r.Context(), id)
		if err != nil {
			log.With(sl.Module("http.handlers.services"), slog.String("id", id), sl.Err(err)).Error("delete service image")
			response.Fail(w, r, err, "Failed to delete image")
			return
		}
		render.JSON(w, r, response.Ok(svc))
	}
}
