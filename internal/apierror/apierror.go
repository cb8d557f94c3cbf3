// Package apierror provides the canonical error envelope for the API.
// All 4xx/5xx responses go through this package so that clients always see a
// consistent shape and internals (stack traces, driver errors) never leak.
package apierror

// APIError is the envelope for all error responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// NotFound is the fixed body for missing resources.
func NotFound() *APIError {
	return &APIError{Error: "Not found"}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Error: "Validation failed", Fields: fields}
}
