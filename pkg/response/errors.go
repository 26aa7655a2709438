package response

import "net/http"

// HTTPError is an error that carries the status code it should be reported with.
type HTTPError struct {
	Status  int
	Message string
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// statusOf returns the status to report err with.
func statusOf(err error) int {
	if he, ok := err.(*HTTPError); ok && he.Status != 0 {
		return he.Status
	}
	return http.StatusBadRequest
}
