package response

import (
	"DentEase/entity"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Ok(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}

// Fields reports per-field validation problems next to a general message.
func Fields(message string, fields map[string]string) Response {
	return Response{
		Success: false,
		Error:   message,
		Fields:  fields,
	}
}

func ValidationError(err error) Response {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return Error(err.Error())
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return Fields("Validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "gte":
		return fe.Field() + " must not be negative"
	}
	return fe.Field() + " is invalid"
}

// StatusOf maps domain errors onto HTTP status codes.
func StatusOf(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidStatus), errors.Is(err, entity.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, entity.ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotSynced):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
