package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}

// Conflict, Configuration and Validation are shortcuts for module error catalogues.
// A conflict surfaces as 400 to clients, same as a validation failure.
func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

func Configuration(message string) *AppError {
	return New(CodeConfiguration, message, http.StatusBadRequest)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
