package usererrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.Conflict("User with the same email already exists")

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrRoleNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Role does not exist",
		http.StatusBadRequest,
	)

	ErrInvalidReference = apperror.Validation("Department or branch does not exist")

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrCannotDeactivateSelf = apperror.New(
		apperror.CodeInvalidState,
		"You cannot deactivate your own account",
		http.StatusBadRequest,
	)
)
