package depreciationerrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrInvalidAssetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid asset id",
		http.StatusBadRequest,
	)
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset not found",
		http.StatusNotFound,
	)
	ErrBatchInProgress = apperror.Conflict("depreciation batch already running")
	ErrInvalidCronSecret = apperror.New(
		apperror.CodeUnauthorized,
		"invalid cron secret",
		http.StatusUnauthorized,
	)
)
