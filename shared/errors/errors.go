package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Is lets errors.Is match an ErrorWithStatusCode against the kind sentinels below.
func (e *ErrorWithStatusCode) Is(target error) bool {
	k, ok := target.(kind)
	if !ok {
		return false
	}
	return kindOf(e.StatusCode) == k
}

type kind string

func (k kind) Error() string { return string(k) }

// Error kinds shared by backend layers and the client gateway.
var (
	ErrNotFound   error = kind("not found")
	ErrConflict   error = kind("conflict")
	ErrForbidden  error = kind("forbidden")
	ErrValidation error = kind("validation failed")
	ErrNetwork    error = kind("network error")
	ErrInternal   error = kind("internal error")
)

func kindOf(status int) kind {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound.(kind)
	case status == http.StatusConflict:
		return ErrConflict.(kind)
	case status == http.StatusForbidden, status == http.StatusUnauthorized:
		return ErrForbidden.(kind)
	case status == http.StatusBadRequest, status == http.StatusRequestEntityTooLarge, status == http.StatusUnprocessableEntity:
		return ErrValidation.(kind)
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return ErrNetwork.(kind)
	default:
		return ErrInternal.(kind)
	}
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func Conflict(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

func Forbidden(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func BadRequest(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

// Network wraps a transport failure. The status is 503 so that the HTTP
// translation stays meaningful if it is ever written back to a response.
func Network(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusServiceUnavailable}
}

// StatusCode extracts the HTTP status carried by err, 500 if none.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
