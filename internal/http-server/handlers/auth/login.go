package auth

import (
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	authservice "DentEase/internal/service/auth"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=30"`
}

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, r, "Invalid request body")
			return
		}
		req.Email = authservice.NormalizeEmail(req.Email)
		if err := request.Validate(&req); err != nil {
			response.Fail(w, r, err, "Validation failed")
			return
		}

		result, err := handler.Login(r.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, authservice.ErrUnknownEmail):
			logger.Warn("login with unknown email", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Fields("Login failed", map[string]string{
				"email": "No account found with that email address.",
			}))
			return
		case errors.Is(err, authservice.ErrWrongPassword):
			logger.Warn("login with wrong password", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Fields("Login failed", map[string]string{
				"password": "The password you entered is incorrect.",
			}))
			return
		case err != nil:
			logger.Error("login", sl.Err(err))
			response.Fail(w, r, err, "Login failed, please try again")
			return
		}

		logger.Info("admin signed in", slog.String("email", req.Email))
		render.JSON(w, r, response.Ok(result))
	}
}
