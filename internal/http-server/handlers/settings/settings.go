package settings

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

type UpdateRequest struct {
	OperatorName string `json:"operatorName" validate:"required,max=50"`
}

func Get(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Settings()))
	}
}

func Update(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}
		name := strings.TrimSpace(req.OperatorName)
		if name == "" {
			response.BadRequest(w, r, "Operator name is required")
			return
		}
		render.JSON(w, r, response.Ok(handler.SetOperatorName(name)))
	}
}
