package brancherrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)

	ErrBranchNameExists = apperror.Conflict("Branch with the same name already exists")

	ErrBranchInUse = apperror.Conflict("Branch is still referenced by assets or users")

	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
)
