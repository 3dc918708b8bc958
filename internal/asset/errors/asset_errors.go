package asseterrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asset not found",
		http.StatusNotFound,
	)

	ErrInvalidAssetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid asset ID",
		http.StatusBadRequest,
	)

	ErrInvalidBillDate = apperror.Validation("billDate must be a past or current date in YYYY-MM-DD format")

	ErrInvalidStatus = apperror.Validation("assetUsageStatus must be IN_USE or IDLE")

	ErrInvalidStatusFilter = apperror.Validation("status must be IN_USE, IDLE or SCRAPPED")

	ErrInvalidCategory = apperror.Validation("assetCategory must be IT or NON_IT")

	ErrOpeningBalanceRequired = apperror.Validation("openingBalance is required")

	ErrInvalidReferenceID = apperror.Validation("assetTypeId, departmentId and branchId must be valid UUIDs")

	ErrNegativeAmount = apperror.Validation("openingBalance and addition must not be negative")

	ErrInvalidReference = apperror.Validation("Asset type, department, branch or user does not exist")

	ErrAssetScrapped = apperror.Conflict("Scrapped assets cannot be modified")

	ErrOutstandingScrapRequest = apperror.Conflict("Asset has an outstanding scrap request")
)
