package departmenterrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentNameExists = apperror.Conflict("Department with the same name already exists")

	ErrDepartmentInUse = apperror.Conflict("Department still has assets or users assigned")

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
