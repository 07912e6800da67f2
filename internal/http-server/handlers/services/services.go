package services

import (
	"DentEase/entity"
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := handler.ListServices(r.Context())
		if err != nil {
			log.With(sl.Module("http.handlers.services"), sl.Err(err)).Error("list services")
			response.Fail(w, r, err, "Failed to load services")
			return
		}
		render.JSON(w, r, response.Ok(items))
	}
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.services"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ServiceInput
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		svc, err := handler.CreateService(r.Context(), req)
		if err != nil {
			logger.Error("create service", sl.Err(err))
			response.Fail(w, r, err, "Failed to create service")
			return
		}

		logger.Info("service created", slog.String("id", svc.ID), slog.String("name", svc.Name))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(svc))
	}
}

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.services"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("id", id),
		)

		var req entity.ServiceInput
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		svc, err := handler.UpdateService(r.Context(), id, req)
		if err != nil {
			logger.Error("update service", sl.Err(err))
			response.Fail(w, r, err, "Failed to update service")
			return
		}
		render.JSON(w, r, response.Ok(svc))
	}
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := handler.DeleteService(r.Context(), id); err != nil {
			log.With(sl.Module("http.handlers.services"), slog.String("id", id), sl.Err(err)).Error("delete service")
			response.Fail(w, r, err, "Failed to delete service")
			return
		}
		render.JSON(w, r, response.Ok("Service deleted"))
	}
}
