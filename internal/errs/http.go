package errs

import (
	"errors"
	"net/http"
)

// Error codes written next to the message in every error body.
const (
	CodeNotFound      = "not_found"
	CodeAlreadyExists = "already_exists"
	CodeInvalidInput  = "invalid_input"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodeInternal      = "internal_error"
)

// HTTPStatus maps a typed error to its status code and error code.
// Store and collaborator failures are reported as 500; the caller decides
// what message reaches the client.
func HTTPStatus(err error) (int, string) {
	var (
		notFound     *NotFoundError
		exists       *AlreadyExistsError
		validation   *ValidationError
		unauthorized *UnauthorizedError
		forbidden    *ForbiddenError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, CodeNotFound
	case errors.As(err, &exists):
		return http.StatusConflict, CodeAlreadyExists
	case errors.As(err, &validation):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden, CodeForbidden
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
