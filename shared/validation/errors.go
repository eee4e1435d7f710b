package validation

import (
	"errors"
	"net/http"

	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
)

// ErrPayloadTooLarge is returned when an upload exceeds its size ceiling
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")

// Error is a user-facing validation failure raised before any network call.
type Error struct {
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{internal_errors.ErrValidation, e.cause}
	}
	return []error{internal_errors.ErrValidation}
}

// StatusError converts e for the HTTP layer.
func (e *Error) StatusError() *internal_errors.ErrorWithStatusCode {
	status := http.StatusBadRequest
	if errors.Is(e.cause, ErrPayloadTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	return &internal_errors.ErrorWithStatusCode{Message: e.Error(), StatusCode: status}
}

func fieldError(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}
