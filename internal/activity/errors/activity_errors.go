package activityerrors

import "go-asset/internal/shared/apperror"

var (
	ErrInvalidAssetFilter = apperror.Validation("assetId must be a valid UUID")

	ErrUnknownAction = apperror.Validation("unknown activity action")
)
