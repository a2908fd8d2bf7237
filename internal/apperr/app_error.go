package apperr

import "github.com/tuanvumaihuynh/shopster-web/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	UnauthorizedCode      = "UNAUTHORIZED"
	NotFoundCode          = "NOT_FOUND"
	UpstreamErrorCode     = "UPSTREAM_ERROR"
	UpstreamRejectedCode  = "UPSTREAM_REJECTED"
	SearchUnavailableCode = "SEARCH_UNAVAILABLE"
	BusyCode              = "BUSY"
	InternalErrorCode     = "INTERNAL_ERROR"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// UnauthorizedErr means the session is missing, expired or rejected by the API.
	UnauthorizedErr = zerror.NewUnauthorized(UnauthorizedCode, "unauthorized")

	NotFoundErr = zerror.NewNotFound(NotFoundCode, "not found")

	// UpstreamErr is a transport failure or 5xx from the commerce API.
	UpstreamErr = zerror.NewBadGateway(UpstreamErrorCode, "commerce api is unavailable")

	// UpstreamRejectedErr is a 4xx answer whose message is meant for the user.
	UpstreamRejectedErr = zerror.NewBadRequest(UpstreamRejectedCode, "request rejected")

	SearchUnavailableErr = zerror.NewServiceUnavailable(SearchUnavailableCode, "search is unavailable")

	// BusyErr rejects a second submit while one is in flight.
	BusyErr = zerror.NewConflict(BusyCode, "another request is in progress")

	InternalErr = zerror.NewInternalServerError(InternalErrorCode, "internal server error")
)
