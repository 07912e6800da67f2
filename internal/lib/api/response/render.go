package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Fail renders err with its mapped status. Client errors carry their own
// message; server errors are reported as message.
func Fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := StatusOf(err)
	render.Status(r, status)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		render.JSON(w, r, ValidationError(err))
	case status < http.StatusInternalServerError:
		render.JSON(w, r, Error(err.Error()))
	default:
		render.JSON(w, r, Error(message))
	}
}

// BadRequest renders a 400 with message.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(message))
}
