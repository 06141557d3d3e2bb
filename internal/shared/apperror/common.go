package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"The backend is temporarily unavailable, please retry",
		http.StatusServiceUnavailable,
	)
)

// RequiredField reports a single missing field.
func RequiredField(field string) *AppError {
	return New(CodeValidationError, field+" is required", http.StatusBadRequest)
}

// InvalidField reports a single malformed field.
func InvalidField(field string) *AppError {
	return New(CodeValidationError, field+" is invalid", http.StatusBadRequest)
}

// Validation wraps a field -> message map so handlers can render it per field.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    "Input tidak valid",
		HTTPStatus: http.StatusBadRequest,
		Details:    fields,
	}
}
