package scraprequesterrors

import (
	"net/http"

	"go-asset/internal/shared/apperror"
)

var (
	ErrScrapRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Scrap request not found",
		http.StatusNotFound,
	)

	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asset not found",
		http.StatusNotFound,
	)

	ErrRequestOutstanding = apperror.Conflict("request already outstanding")

	ErrNoWorkflow = apperror.Configuration("no approval workflow defined")

	ErrAlreadyDecided = apperror.Conflict("scrap request is no longer pending")

	// ErrConcurrentDecision means another decision moved the request first.
	ErrConcurrentDecision = apperror.Conflict("scrap request was decided concurrently")

	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"Your role cannot decide at the current approval level",
		http.StatusForbidden,
	)

	ErrInvalidAction = apperror.Validation("action must be APPROVED or REJECTED")

	ErrInvalidStatusFilter = apperror.Validation("status must be PENDING, APPROVED or REJECTED")

	ErrInvalidScrapRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid scrap request ID",
		http.StatusBadRequest,
	)
)
