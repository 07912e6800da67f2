package auth

import (
	"DentEase/internal/lib/api/cont"
	"DentEase/internal/lib/api/request"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	authservice "DentEase/internal/service/auth"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type PasswordRequest struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required"`
	Confirm string `json:"confirmPassword" validate:"required"`
}

func ChangePassword(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user := cont.GetUser(r.Context())
		if user == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Unauthorized"))
			return
		}

		var req PasswordRequest
		if err := request.Decode(r, &req); err != nil {
			response.Fail(w, r, err, "Invalid request body")
			return
		}
		if req.New != req.Confirm {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fields("Validation failed", map[string]string{
				"confirmPassword": "Passwords do not match",
			}))
			return
		}

		err := handler.ChangePassword(r.Context(), user.Email, req.Current, req.New)
		switch {
		case errors.Is(err, authservice.ErrWrongPassword):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fields("Validation failed", map[string]string{
				"currentPassword": "The current password is incorrect.",
			}))
			return
		case errors.Is(err, authservice.ErrWeakPassword):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fields("Validation failed", map[string]string{
				"newPassword": err.Error(),
			}))
			return
		case err != nil:
			logger.Error("change password", sl.Err(err))
			response.Fail(w, r, err, "Failed to change password")
			return
		}

		logger.Info("password changed", slog.String("email", user.Email))
		render.JSON(w, r, response.Ok("Password updated"))
	}
}
