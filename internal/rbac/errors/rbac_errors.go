package rbacerrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)

	ErrRoleNameExists = apperror.Conflict("Role with the same name already exists")

	ErrRoleInUse = apperror.Conflict("Role is still assigned to users or approval levels")

	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role ID",
		http.StatusBadRequest,
	)
)
