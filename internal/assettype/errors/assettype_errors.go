package assettypeerrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrAssetTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asset type not found",
		http.StatusNotFound,
	)

	ErrAssetTypeNameExists = apperror.Conflict("Asset type with the same name already exists")

	ErrAssetTypeInUse = apperror.Conflict("Asset type is still used by assets")

	ErrInvalidPercentage = apperror.Validation("depreciationPercentage must be between 0 and 100")

	ErrInvalidAssetTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid asset type ID",
		http.StatusBadRequest,
	)
)
