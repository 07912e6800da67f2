package conversations

import (
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := handler.ListConversations(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			log.With(sl.Module("http.handlers.conversations"), sl.Err(err)).Error("list conversations")
			response.Fail(w, r, err, "Failed to load conversations")
			return
		}
		render.JSON(w, r, response.Ok(views))
	}
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		view, err := handler.GetConversation(r.Context(), id)
		if err != nil {
			log.With(sl.Module("http.handlers.conversations"), slog.String("id", id), sl.Err(err)).Debug("get conversation")
			response.Fail(w, r, err, "Failed to load conversation")
			return
		}
		render.JSON(w, r, response.Ok(view))
	}
}

// Open marks the thread read and returns it.
func Open(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		view, err := handler.OpenConversation(r.Context(), id)
		if err != nil {
			log.With(sl.Module("http.handlers.conversations"), slog.String("id", id), sl.Err(err)).Error("open conversation")
			response.Fail(w, r, err, "Failed to open conversation")
			return
		}
		render.JSON(w, r, response.Ok(view))
	}
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(sl.Module("http.handlers.conversations"), slog.String("id", id))
		if err := handler.DeleteConversation(r.Context(), id); err != nil {
			logger.Error("delete conversation", sl.Err(err))
			response.Fail(w, r, err, "Failed to delete conversation")
			return
		}
		logger.Info("conversation deleted")
		render.JSON(w, r, response.Ok("Conversation deleted"))
	}
}
