package types

import (
	"errors"
	"net/http"
)

// ConfigurationError is returned when a required setting (e.g. the spreadsheet ID)
// cannot be resolved.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return e.Message
}

// AcquisitionError is returned when an upstream fetch fails or returns a non-success
// status. Message is the text reported to the caller, Err the underlying cause (if any).
type AcquisitionError struct {
	Message string
	Err     error
}

func (e AcquisitionError) Error() string {
	return e.Message
}

func (e AcquisitionError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for missing or invalid request fields.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// MethodError is returned for a request with an unsupported HTTP verb.
type MethodError struct {
	Method string
}

func (e MethodError) Error() string {
	return "Method not allowed"
}

// StatusCode maps an error to the HTTP status returned to the caller. Anything that is
// not one of the request-level errors is an internal error.
func StatusCode(err error) int {
	var validation ValidationError
	var method MethodError

	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &validation):
		return http.StatusBadRequest

	case errors.As(err, &method):
		return http.StatusMethodNotAllowed

	default:
		return http.StatusInternalServerError
	}
}
