// Package apierror provides the response envelope shared by every endpoint.
// Errors go out as {ok:false, msg} so internal details (stack traces, DB
// errors) never reach the client.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Ok  bool   `json:"ok"`
	Msg string `json:"msg"`
}

func New(msg string) *APIError {
	return &APIError{Ok: false, Msg: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Ok     bool              `json:"ok"`
	Msg    string            `json:"msg"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Ok: false, Msg: "Error de validación", Fields: fields}
}
