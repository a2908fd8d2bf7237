package apierr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/pkg/validator"
	"github.com/tuanvumaihuynh/shopster-web/pkg/zerror"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error body of the JSON endpoints.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Code:       apperr.InternalErrorCode,
	Message:    "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func errorToErrorResponse(err error) ErrorResponse {
	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = FieldError{
				Field:   fe.Field(),
				Message: validator.ValidationErrorMessage(fe),
			}
		}

		return ErrorResponse{
			Code:       apperr.ValidationErrorCode,
			Message:    "validation error",
			Details:    details,
			StatusCode: http.StatusBadRequest,
		}
	}

	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Code:       zErr.Code(),
			Message:    zErr.Msg(),
			StatusCode: zErr.Status().HTTPStatus(),
		}
	}

	return InternalServerErr
}

// StatusCode is the HTTP status a page should be served with for err.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return errorToErrorResponse(err).StatusCode
}

// UserMessage returns the message of err that may be shown to a visitor, or
// fallback. Only messages the commerce API addressed to the user qualify.
func UserMessage(err error, fallback string) string {
	var zErr zerror.ZError
	if !errors.As(err, &zErr) {
		return fallback
	}
	switch {
	case errors.Is(err, apperr.UpstreamRejectedErr),
		errors.Is(err, apperr.UnauthorizedErr),
		errors.Is(err, apperr.NotFoundErr):
	default:
		return fallback
	}
	// The sentinel's own message is generic and says nothing useful.
	for _, generic := range []zerror.ZError{apperr.UpstreamRejectedErr, apperr.UnauthorizedErr, apperr.NotFoundErr} {
		if zErr.Msg() == generic.Msg() {
			return fallback
		}
	}
	if zErr.Msg() == "" {
		return fallback
	}
	return zErr.Msg()
}
