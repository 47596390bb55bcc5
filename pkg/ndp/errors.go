package ndp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error object returned by the API.
type APIError struct {
	Code       int          `json:"code"                 yaml:"code"`
	Message    string       `json:"message"              yaml:"message"`
	Missing    []Identifier `json:"missing,omitempty"    yaml:"missing,omitempty"`
	Duplicated []Identifier `json:"duplicated,omitempty" yaml:"duplicated,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// ResponseError is the envelope the API wraps errors in.
type ResponseError struct {
	Err APIError `json:"error"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	return e.Err.Error()
}

// RequestError couples a failed request's HTTP status with the parsed API
// error, so callers and the executor can classify without string matching.
type RequestError struct {
	StatusCode int
	Method     string
	Path       string
	APIError   *APIError
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.APIError != nil {
		return fmt.Sprintf("%s %s: %s (status: %d)", e.Method, e.Path, e.APIError.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s %s: request failed (status: %d)", e.Method, e.Path, e.StatusCode)
}

// Retryable reports whether the status code marks a transient failure that
// is safe to retry under the default policy.
func (e *RequestError) Retryable() bool {
	return IsRetryableStatus(e.StatusCode)
}

// Common static errors that can be wrapped with context.
var (
	// ErrAmbiguousResult marks a request whose outcome is unknowable: it
	// was sent, but the response was lost (timeout after send, connection
	// dropped mid-response). Items behind such a request must be reported
	// as unknown, never as failed.
	ErrAmbiguousResult = errors.New("request outcome is unknown")

	ErrConfigRequired       = errors.New("config is required")
	ErrBaseURLRequired      = errors.New("base URL is required")
	ErrProjectRequired      = errors.New("project is required")
	ErrIdentifierRequired   = errors.New("identifier must set id or externalId")
	ErrStaticTokenNoRefresh = errors.New("static token cannot be refreshed")
	ErrNoMoreItems          = errors.New("no more items")
	ErrHierarchyCycle       = errors.New("asset hierarchy contains a cycle")
	ErrDuplicateExternalID  = errors.New("duplicate external ID in input")
	ErrNotScheduled         = errors.New("chunk not attempted")
	ErrParentFailed         = errors.New("parent creation failed")
	ErrParentUnknown        = errors.New("parent creation outcome unknown")
	ErrJobFailed            = errors.New("job failed")
	ErrExecutionFailed      = errors.New("workflow execution failed")
)

// DefaultRetryableStatuses are the HTTP status codes retried by default.
// Callers can override the set per call through RetryPolicy.
var DefaultRetryableStatuses = []int{
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
}

// IsRetryableStatus reports whether code is in the default retryable set.
func IsRetryableStatus(code int) bool {
	for _, c := range DefaultRetryableStatuses {
		if code == c {
			return true
		}
	}

	return false
}

// IsNotFound checks whether the error is a 404 from the API.
func IsNotFound(err error) bool {
	reqErr := &RequestError{}

	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks whether the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	reqErr := &RequestError{}

	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized
}

// IsDuplicated checks whether the error reports duplicated identifiers.
func IsDuplicated(err error) bool {
	reqErr := &RequestError{}

	return errors.As(err, &reqErr) && reqErr.APIError != nil && len(reqErr.APIError.Duplicated) > 0
}

// IsAmbiguous checks whether the error carries an unknowable outcome.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousResult)
}

// ParseResponseError parses an error envelope from a response body.
func ParseResponseError(data []byte) (*ResponseError, error) {
	var errResp ResponseError

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}
