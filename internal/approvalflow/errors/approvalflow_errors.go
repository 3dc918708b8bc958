package approvalflowerrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrLevelNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approval level not found",
		http.StatusNotFound,
	)

	ErrDuplicateLevelNumber = apperror.Conflict("duplicate level number")

	ErrLevelInUse = apperror.Conflict("approval level in use")

	ErrLevelHasHistory = apperror.Conflict("approval level is referenced by recorded approvals")

	ErrInvalidLevelNumber = apperror.Validation("levelNumber must be a positive integer")

	ErrAssetTypeNotFound = apperror.Validation("Asset type does not exist")

	ErrRoleNotFound = apperror.Validation("Role does not exist")

	ErrInvalidLevelID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid approval level ID",
		http.StatusBadRequest,
	)
)
