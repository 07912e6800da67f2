package presence

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type SetRequest struct {
	Online *bool `json:"online" validate:"required"`
}

type FeedStatusResponse struct {
	Streams   map[string]bool `json:"streams"`
	Connected bool            `json:"connected"`
}

func Get(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Presence()))
	}
}

func Set(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}
		p := handler.SetPresence(*req.Online)
		log.With(sl.Module("http.handlers.presence")).Info("operator presence set", slog.Bool("online", p.Online))
		render.JSON(w, r, response.Ok(p))
	}
}

func FeedStatus(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streams, connected := handler.FeedStatus()
		render.JSON(w, r, response.Ok(FeedStatusResponse{Streams: streams, Connected: connected}))
	}
}
