package smartsheet

import (
	"errors"
	"fmt"
)

// Smartsheet error codes we care about. The service reports these in the
// response body, independent of the HTTP status.
const (
	// CodeNotFound is returned when an id does not resolve as the requested
	// resource kind. This is the signal to retry a workspace id as a folder.
	CodeNotFound = 1006
)

// APIError is an error response from the Smartsheet API
type APIError struct {
	StatusCode int    // HTTP status
	Code       int    `json:"errorCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("smartsheet: HTTP %d, error %d: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound reports whether err is a Smartsheet not-found error (code 1006)
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeNotFound
	}
	return false
}
