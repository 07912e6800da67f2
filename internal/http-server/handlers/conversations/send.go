package conversations

import (
	"DentEase/impl/core"
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type SendRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func Send(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.conversations"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("conversation", id),
		)

		var req SendRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		msg, err := handler.SendMessage(r.Context(), id, req.Text)
		if err != nil {
			logger.Error("send message", sl.Err(err))
			response.Fail(w, r, err, "Failed to send message")
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(msg))
	}
}

func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.conversations"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req core.NewConversation
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		conv, err := handler.StartConversation(r.Context(), req)
		if err != nil {
			logger.Error("start conversation", slog.String("user", req.UserID), sl.Err(err))
			response.Fail(w, r, err, "Failed to start conversation")
			return
		}
		render.JSON(w, r, response.Ok(conv))
	}
}
