package feedback

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ReplyRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := handler.ListFeedback(r.Context(), request.QueryInt(r, "rating", 0))
		if err != nil {
			log.With(sl.Module("http.handlers.feedback"), sl.Err(err)).Error("list feedback")
			response.Fail(w, r, err, "Failed to load feedback")
			return
		}
		render.JSON(w, r, response.Ok(list))
	}
}

func Reply(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(sl.Module("http.handlers.feedback"), slog.String("feedback", id))

		var req ReplyRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}

		reply, err := handler.ReplyFeedback(r.Context(), id, req.Text)
		if err != nil {
			logger.Error("reply to feedback", sl.Err(err))
			response.Fail(w, r, err, "Failed to save reply")
			return
		}
		render.JSON(w, r, response.Ok(reply))
	}
}
